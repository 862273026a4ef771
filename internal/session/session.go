package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/chat"
	"github.com/abhisek/vidya/internal/content"
	"github.com/abhisek/vidya/internal/llm"
	"github.com/abhisek/vidya/internal/quiz"
	"github.com/abhisek/vidya/internal/store"
)

// Session is one learner's lesson from intro to quiz result.
//
// Commands may be called from any goroutine. Content-requesting commands
// (StartLesson, SendMessage, StartQuiz) block until the provider answers and
// are single-flight: while one is outstanding the others fail with ErrBusy.
// The session imposes no deadline on the provider; a call that never
// returns keeps the session busy. Provider failures never surface as errors:
// they are replaced with fixed fallbacks and logged.
type Session struct {
	provider content.Provider
	events   store.EventRepo
	logger   *zap.Logger

	// busy admits one outstanding content request. It is never waited on.
	busy *semaphore.Weighted

	mu       sync.Mutex
	id       string
	state    State
	epoch    uint64 // bumped whenever the lesson changes; stale results are dropped
	inflight bool
	lesson   *catalog.Lesson
	lang     catalog.Language
	log      *chat.Log
	quiz     *quiz.Quiz
	fellBack bool
	result   *quiz.Result
}

// New creates an idle session. events and logger may be nil.
func New(provider content.Provider, events store.EventRepo, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		provider: provider,
		events:   events,
		logger:   logger.Named("session"),
		busy:     semaphore.NewWeighted(1),
		state:    StateIdle,
		log:      chat.NewLog(),
	}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Busy reports whether a content request is outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight
}

// StartLesson opens a lesson from Idle or Result, replacing any previous
// conversation, and waits for the tutor's introduction.
func (s *Session) StartLesson(ctx context.Context, lesson catalog.Lesson, lang catalog.Language) error {
	if !s.busy.TryAcquire(1) {
		return s.reject(CmdStartLesson, ErrBusy)
	}
	defer s.busy.Release(1)

	s.mu.Lock()
	if s.state != StateIdle && s.state != StateResult {
		s.mu.Unlock()
		return s.reject(CmdStartLesson, ErrInvalidCommand)
	}
	if _, ok := catalog.ParseLanguage(string(lang)); !ok {
		s.mu.Unlock()
		return s.reject(CmdStartLesson, ErrInvalidCommand)
	}
	if lang == "" {
		lang = catalog.LanguageEnglish
	}
	l := lesson.Clone()
	s.resetLocked()
	s.id = uuid.NewString()
	s.lesson = &l
	s.lang = lang
	s.state = StateIntroLoading
	s.inflight = true
	epoch := s.epoch
	sid := s.id
	ev := s.eventLocked(store.ActionLessonStarted)
	s.mu.Unlock()

	s.record(ev)
	s.logger.Info("lesson started",
		zap.String("session_id", ev.SessionID),
		zap.String("lesson_id", l.ID),
		zap.String("language", string(lang)))

	text, err := s.provider.GenerateIntro(llm.WithSession(ctx, sid), l.Title, l.Grade, lang)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight = false
	if s.epoch != epoch {
		s.logger.Debug("discarding stale intro", zap.String("lesson_id", l.ID))
		return nil
	}
	switch {
	case err != nil:
		s.warn(llm.PurposeIntro, sid, l.ID, err)
		text = FallbackIntro
	case strings.TrimSpace(text) == "":
		text = FallbackGreeting
	}
	s.log.Append(chat.AuthorTutor, text, "")
	s.state = StateChatting
	return nil
}

// SendMessage appends the learner's message and waits for the tutor's
// reply. A message mentioning "quiz" starts the quiz instead. Blank text is
// rejected.
func (s *Session) SendMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.reject(CmdSendMessage, ErrInvalidCommand)
	}
	if !s.busy.TryAcquire(1) {
		return s.reject(CmdSendMessage, ErrBusy)
	}
	defer s.busy.Release(1)

	s.mu.Lock()
	if s.state != StateChatting {
		s.mu.Unlock()
		return s.reject(CmdSendMessage, ErrInvalidCommand)
	}
	history := s.log.Snapshot()
	s.log.Append(chat.AuthorLearner, text, "")

	if WantsQuiz(text) {
		epoch, sid, lesson := s.beginQuizLocked()
		s.mu.Unlock()
		return s.loadQuiz(ctx, epoch, sid, lesson)
	}

	s.inflight = true
	epoch := s.epoch
	sid := s.id
	lesson := *s.lesson
	lang := s.lang
	s.mu.Unlock()

	reply, err := s.provider.GenerateReply(llm.WithSession(ctx, sid), history, text, lesson.Title, lesson.Grade, lang)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight = false
	if s.epoch != epoch {
		s.logger.Debug("discarding stale reply", zap.String("lesson_id", lesson.ID))
		return nil
	}
	if err != nil {
		s.warn(llm.PurposeReply, sid, lesson.ID, err)
		reply = content.Reply{Text: FallbackReply}
	}
	s.log.Append(chat.AuthorTutor, reply.Text, reply.VisualKeyword)
	return nil
}

// StartQuiz requests the lesson quiz and waits for it. If generation fails
// or yields nothing usable, the built-in fallback question is used.
func (s *Session) StartQuiz(ctx context.Context) error {
	if !s.busy.TryAcquire(1) {
		return s.reject(CmdStartQuiz, ErrBusy)
	}
	defer s.busy.Release(1)

	s.mu.Lock()
	if s.state != StateChatting {
		s.mu.Unlock()
		return s.reject(CmdStartQuiz, ErrInvalidCommand)
	}
	epoch, sid, lesson := s.beginQuizLocked()
	s.mu.Unlock()

	return s.loadQuiz(ctx, epoch, sid, lesson)
}

// beginQuizLocked moves to QuizLoading. Callers hold s.mu and the busy slot.
func (s *Session) beginQuizLocked() (uint64, string, catalog.Lesson) {
	s.state = StateQuizLoading
	s.inflight = true
	return s.epoch, s.id, *s.lesson
}

func (s *Session) loadQuiz(ctx context.Context, epoch uint64, sid string, lesson catalog.Lesson) error {
	generated, err := s.provider.GenerateQuiz(llm.WithSession(ctx, sid), lesson.Title, lesson.Grade)
	if err != nil {
		s.warn(llm.PurposeQuiz, sid, lesson.ID, err)
		generated = nil
	}
	questions, fellBack := quiz.Sanitize(generated)
	if fellBack && err == nil {
		s.logger.Warn("quiz had no usable questions, using fallback",
			zap.String("lesson_id", lesson.ID),
			zap.Int("generated", len(generated)))
	}
	q, qErr := quiz.New(questions)
	if qErr != nil {
		q, _ = quiz.New(quiz.Fallback())
		fellBack = true
	}

	s.mu.Lock()
	s.inflight = false
	if s.epoch != epoch {
		s.mu.Unlock()
		s.logger.Debug("discarding stale quiz", zap.String("lesson_id", lesson.ID))
		return nil
	}
	s.quiz = q
	s.fellBack = fellBack
	s.state = StateQuizzing
	ev := s.eventLocked(store.ActionQuizStarted)
	s.mu.Unlock()

	s.record(ev)
	return nil
}

// SelectOption answers the current question. It returns true when the
// selection was recorded and false when the question was already answered.
// An index that names no option is rejected.
func (s *Session) SelectOption(index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateQuizzing {
		return false, s.rejectLocked(CmdSelectOption, ErrInvalidCommand)
	}
	recorded, err := s.quiz.Select(index)
	if err != nil {
		return false, s.rejectLocked(CmdSelectOption, errors.Join(ErrInvalidCommand, err))
	}
	return recorded, nil
}

// Advance moves past the answered question. After the last question it
// returns the quiz result and the session enters Result.
func (s *Session) Advance() (*quiz.Result, error) {
	s.mu.Lock()
	if s.state != StateQuizzing {
		err := s.rejectLocked(CmdAdvance, ErrInvalidCommand)
		s.mu.Unlock()
		return nil, err
	}
	r, err := s.quiz.Advance()
	if err != nil {
		err = s.rejectLocked(CmdAdvance, errors.Join(ErrInvalidCommand, err))
		s.mu.Unlock()
		return nil, err
	}
	if r == nil {
		s.mu.Unlock()
		return nil, nil
	}
	s.result = r
	s.state = StateResult
	ev := s.eventLocked(store.ActionQuizCompleted)
	s.mu.Unlock()

	s.record(ev)
	s.logger.Info("quiz completed",
		zap.String("session_id", ev.SessionID),
		zap.String("lesson_id", ev.LessonID),
		zap.Int("correct", r.Correct),
		zap.Int("total", r.Total),
		zap.Int("score", r.Score))
	out := *r
	return &out, nil
}

// ReturnToDashboard abandons the lesson and returns to Idle. It is allowed
// while a request is outstanding; that request keeps the session busy until
// it resolves and its result is discarded.
func (s *Session) ReturnToDashboard() error {
	s.mu.Lock()
	if s.state == StateIdle {
		err := s.rejectLocked(CmdReturnToDashboard, ErrInvalidCommand)
		s.mu.Unlock()
		return err
	}
	ev := s.eventLocked(store.ActionReturned)
	s.resetLocked()
	s.mu.Unlock()

	s.record(ev)
	return nil
}

// resetLocked clears the lesson and invalidates any outstanding request.
func (s *Session) resetLocked() {
	s.epoch++
	s.state = StateIdle
	s.lesson = nil
	s.lang = ""
	s.log = chat.NewLog()
	s.quiz = nil
	s.fellBack = false
	s.result = nil
}

// Snapshot is a read-only copy of the session for rendering. Nothing in it
// aliases session state.
type Snapshot struct {
	ID           string
	State        State
	Busy         bool
	Lesson       *catalog.Lesson
	Language     catalog.Language
	Messages     []chat.Message
	Quiz         *quiz.View
	QuizFallback bool
	Result       *quiz.Result
}

// Snapshot returns the current session contents.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:           s.id,
		State:        s.state,
		Busy:         s.inflight,
		Language:     s.lang,
		Messages:     s.log.Snapshot(),
		QuizFallback: s.fellBack,
	}
	if s.lesson != nil {
		l := s.lesson.Clone()
		snap.Lesson = &l
	}
	if s.quiz != nil && s.state == StateQuizzing {
		v := s.quiz.View()
		snap.Quiz = &v
	}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	return snap
}

func (s *Session) reject(cmd string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rejectLocked(cmd, err)
}

func (s *Session) rejectLocked(cmd string, err error) error {
	return &InvalidCommandError{Command: cmd, State: s.state, Err: err}
}

func (s *Session) warn(purpose, sessionID, lessonID string, err error) {
	s.logger.Warn("content generation failed, using fallback",
		zap.String("session_id", sessionID),
		zap.String("lesson_id", lessonID),
		zap.String("purpose", purpose),
		zap.String("kind", content.Kind(err)),
		zap.Error(err))
}

// eventLocked describes the current session for the journal.
func (s *Session) eventLocked(action string) store.SessionEventData {
	ev := store.SessionEventData{
		SessionID: s.id,
		Action:    action,
		Language:  string(s.lang),
		Messages:  s.log.Len(),
	}
	if s.lesson != nil {
		ev.LessonID = s.lesson.ID
	}
	if s.quiz != nil {
		ev.Questions = s.quiz.Len()
		ev.Fallback = s.fellBack
	}
	if s.result != nil {
		ev.Questions = s.result.Total
		ev.Correct = s.result.Correct
		ev.Score = s.result.Score
	}
	return ev
}

func (s *Session) record(ev store.SessionEventData) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendSessionEvent(context.Background(), ev); err != nil {
		s.logger.Debug("journal append failed", zap.String("action", ev.Action), zap.Error(err))
	}
}
