// Package orchestrator is the command surface the front ends drive: it
// signs users in, validates commands against role and session state, and
// books lesson completions on the path.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/vidya/internal/analytics"
	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/content"
	"github.com/abhisek/vidya/internal/quiz"
	"github.com/abhisek/vidya/internal/session"
	"github.com/abhisek/vidya/internal/store"
)

// XPPerLesson is the experience awarded for finishing a lesson quiz.
const XPPerLesson = 50

// Command names for role and login rejections.
const (
	CmdLogin           = "login"
	CmdLogout          = "logout"
	CmdClassInsight    = "class insight"
	CmdDraftCurriculum = "draft curriculum"
)

// ErrInvalidCommand and ErrBusy are shared with the session so callers can
// test any rejection with errors.Is.
var (
	ErrInvalidCommand = session.ErrInvalidCommand
	ErrBusy           = session.ErrBusy
)

// InvalidCommandError is the rejection type returned by every command.
type InvalidCommandError = session.InvalidCommandError

// Config configures an Orchestrator. Zero values select the built-in
// fixtures.
type Config struct {
	Path     *catalog.Path
	Roster   []catalog.StudentProgress
	Events   store.EventRepo
	Logger   *zap.Logger
	Provider content.Provider
}

// Orchestrator coordinates one user's session. It is safe for concurrent
// use; the session lock is never held across provider calls.
type Orchestrator struct {
	session   *session.Session
	analytics *analytics.Service
	logger    *zap.Logger

	mu   sync.Mutex
	user *catalog.User
	path *catalog.Path
}

// New creates a logged-out Orchestrator.
func New(cfg Config) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	path := cfg.Path
	if path == nil {
		path = catalog.SeedPath()
	}
	roster := cfg.Roster
	if roster == nil {
		roster = catalog.SeedClassAnalytics()
	}
	return &Orchestrator{
		session:   session.New(cfg.Provider, cfg.Events, logger),
		analytics: analytics.NewService(cfg.Provider, roster, logger),
		logger:    logger.Named("orchestrator"),
		path:      path,
	}
}

// Login signs in the fixture user for role.
func (o *Orchestrator) Login(role catalog.Role) (catalog.User, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.user != nil {
		return catalog.User{}, o.rejectLocked(CmdLogin, ErrInvalidCommand)
	}
	u, ok := catalog.UserFor(role)
	if !ok {
		return catalog.User{}, o.rejectLocked(CmdLogin, fmt.Errorf("%w: unknown role %q", ErrInvalidCommand, role))
	}
	o.user = &u
	o.logger.Info("user logged in", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

// Logout signs out and abandons any lesson in progress.
func (o *Orchestrator) Logout() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.user == nil {
		return o.rejectLocked(CmdLogout, ErrInvalidCommand)
	}
	if o.session.State() != session.StateIdle {
		_ = o.session.ReturnToDashboard()
	}
	o.logger.Info("user logged out", zap.String("user_id", o.user.ID))
	o.user = nil
	return nil
}

// User returns the signed-in user.
func (o *Orchestrator) User() (catalog.User, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.user == nil {
		return catalog.User{}, false
	}
	return *o.user, true
}

// Lessons returns the lesson path in order.
func (o *Orchestrator) Lessons() []catalog.Lesson {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.path.Lessons()
}

// StartLesson opens an unlocked lesson for the signed-in student and waits
// for its introduction.
func (o *Orchestrator) StartLesson(ctx context.Context, lessonID string, lang catalog.Language) error {
	o.mu.Lock()
	if err := o.requireRoleLocked(session.CmdStartLesson, catalog.RoleStudent); err != nil {
		o.mu.Unlock()
		return err
	}
	lesson, err := o.path.Startable(lessonID)
	if err != nil {
		err = o.rejectLocked(session.CmdStartLesson, errors.Join(ErrInvalidCommand, err))
		o.mu.Unlock()
		return err
	}
	o.mu.Unlock()

	return o.session.StartLesson(ctx, lesson, lang)
}

// SendMessage forwards a learner message to the session.
func (o *Orchestrator) SendMessage(ctx context.Context, text string) error {
	if err := o.requireRole(session.CmdSendMessage, catalog.RoleStudent); err != nil {
		return err
	}
	return o.session.SendMessage(ctx, text)
}

// StartQuiz starts the lesson quiz.
func (o *Orchestrator) StartQuiz(ctx context.Context) error {
	if err := o.requireRole(session.CmdStartQuiz, catalog.RoleStudent); err != nil {
		return err
	}
	return o.session.StartQuiz(ctx)
}

// SelectOption answers the current quiz question.
func (o *Orchestrator) SelectOption(index int) (bool, error) {
	if err := o.requireRole(session.CmdSelectOption, catalog.RoleStudent); err != nil {
		return false, err
	}
	return o.session.SelectOption(index)
}

// Outcome is the bookkeeping applied when a quiz finishes.
type Outcome struct {
	Result   quiz.Result
	Lesson   catalog.Lesson  // the lesson after completion
	Unlocked *catalog.Lesson // the next lesson, if this completion unlocked it
	Improved bool            // whether the star rating went up
	XP       int             // experience awarded
}

// Advance moves past the answered question. When it finishes the quiz the
// lesson is marked completed, its stars are raised to match the score, the
// next lesson is unlocked and XP is awarded; the returned Outcome describes
// those changes. Otherwise the Outcome is nil.
func (o *Orchestrator) Advance() (*Outcome, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.requireRoleLocked(session.CmdAdvance, catalog.RoleStudent); err != nil {
		return nil, err
	}
	snap := o.session.Snapshot()
	r, err := o.session.Advance()
	if err != nil || r == nil {
		return nil, err
	}

	out := &Outcome{Result: *r}
	if snap.Lesson == nil {
		return out, nil
	}
	next, c, err := o.path.Complete(snap.Lesson.ID, catalog.StarsFor(r.Score))
	if err != nil {
		// The lesson came from this path, so this only happens if the
		// path was replaced mid-lesson.
		o.logger.Error("completing lesson", zap.String("lesson_id", snap.Lesson.ID), zap.Error(err))
		return out, nil
	}
	o.path = next
	o.user.XP += XPPerLesson

	out.Lesson = c.Lesson
	out.Unlocked = c.Unlocked
	out.Improved = c.Improved
	out.XP = XPPerLesson

	fields := []zap.Field{
		zap.String("lesson_id", c.Lesson.ID),
		zap.Int("score", r.Score),
		zap.Int("stars", c.Lesson.Stars),
		zap.Int("xp", o.user.XP),
	}
	if c.Unlocked != nil {
		fields = append(fields, zap.String("unlocked", c.Unlocked.ID))
	}
	o.logger.Info("lesson completed", fields...)
	return out, nil
}

// ReturnToDashboard leaves the current lesson.
func (o *Orchestrator) ReturnToDashboard() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.requireRoleLocked(session.CmdReturnToDashboard, catalog.RoleStudent); err != nil {
		return err
	}
	return o.session.ReturnToDashboard()
}

// ClassInsight returns a one-sentence summary of the class for a teacher.
func (o *Orchestrator) ClassInsight(ctx context.Context) (string, error) {
	if err := o.requireRole(CmdClassInsight, catalog.RoleTeacher); err != nil {
		return "", err
	}
	text, err := o.analytics.Insight(ctx)
	if errors.Is(err, analytics.ErrBusy) {
		return "", o.reject(CmdClassInsight, ErrBusy)
	}
	return text, err
}

// ClassReport returns the derived class views for a teacher.
func (o *Orchestrator) ClassReport() (analytics.Report, error) {
	if err := o.requireRole(CmdClassInsight, catalog.RoleTeacher); err != nil {
		return analytics.Report{}, err
	}
	return o.analytics.Report(), nil
}

// DraftCurriculum generates a weekly topic plan for an admin.
func (o *Orchestrator) DraftCurriculum(ctx context.Context, grade string, subject catalog.Subject) (analytics.Draft, error) {
	if err := o.requireRole(CmdDraftCurriculum, catalog.RoleAdmin); err != nil {
		return analytics.Draft{}, err
	}
	d, err := o.analytics.DraftCurriculum(ctx, grade, subject)
	if errors.Is(err, analytics.ErrBusy) {
		return analytics.Draft{}, o.reject(CmdDraftCurriculum, ErrBusy)
	}
	return d, err
}

// View is an immutable picture of everything a front end renders.
type View struct {
	User      *catalog.User
	Lessons   []catalog.Lesson
	Completed int
	Stars     int
	Session   session.Snapshot
}

// Snapshot returns the current view.
func (o *Orchestrator) Snapshot() View {
	o.mu.Lock()
	defer o.mu.Unlock()

	v := View{
		Lessons: o.path.Lessons(),
		Session: o.session.Snapshot(),
	}
	v.Completed, v.Stars = o.path.Progress()
	if o.user != nil {
		u := *o.user
		v.User = &u
	}
	return v
}

func (o *Orchestrator) requireRole(cmd string, role catalog.Role) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.requireRoleLocked(cmd, role)
}

func (o *Orchestrator) requireRoleLocked(cmd string, role catalog.Role) error {
	switch {
	case o.user == nil:
		return o.rejectLocked(cmd, fmt.Errorf("%w: not logged in", ErrInvalidCommand))
	case o.user.Role != role:
		return o.rejectLocked(cmd, fmt.Errorf("%w: requires role %s", ErrInvalidCommand, role))
	}
	return nil
}

func (o *Orchestrator) reject(cmd string, err error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rejectLocked(cmd, err)
}

func (o *Orchestrator) rejectLocked(cmd string, err error) error {
	return &InvalidCommandError{Command: cmd, State: o.session.State(), Err: err}
}
