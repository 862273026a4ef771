// Package lesson is the student's lesson screen: the tutor chat, the quiz
// and the result, all driven by the session state.
package lesson

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/orchestrator"
	"github.com/abhisek/vidya/internal/router"
	"github.com/abhisek/vidya/internal/screen"
	"github.com/abhisek/vidya/internal/session"
	"github.com/abhisek/vidya/internal/ui/components"
	"github.com/abhisek/vidya/internal/ui/layout"
)

const inputLimit = 280

// LessonScreen implements screen.Screen for an open lesson.
type LessonScreen struct {
	orch    *orchestrator.Orchestrator
	lesson  catalog.Lesson
	lang    catalog.Language
	snap    session.Snapshot
	input   components.TextInput
	mc      components.MultiChoice
	mcKey   string // session id and question index mc was built for
	outcome *orchestrator.Outcome
	spinner components.Spinner
	pending int // background commands not yet returned
	notice  string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.BackHandler = (*LessonScreen)(nil)

// New creates a LessonScreen that opens l in lang when initialised.
func New(orch *orchestrator.Orchestrator, l catalog.Lesson, lang catalog.Language) *LessonScreen {
	return &LessonScreen{
		orch:    orch,
		lesson:  l,
		lang:    lang,
		input:   components.NewTextInput("Ask Vidya anything, or type quiz...", inputLimit),
		spinner: components.Spinner{Label: loadingLabel(session.StateIdle)},
	}
}

func (s *LessonScreen) Init() tea.Cmd {
	return tea.Batch(
		s.start(),
		s.input.Init(),
	)
}

func (s *LessonScreen) Title() string {
	return s.lesson.Title
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	switch s.snap.State {
	case session.StateChatting:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Tab", Description: "Take quiz"},
			{Key: "Esc", Description: "Leave lesson"},
		}
	case session.StateQuizzing:
		if s.snap.Quiz != nil && s.snap.Quiz.Answered {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Next"},
				{Key: "Esc", Description: "Leave lesson"},
			}
		}
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Choose"},
			{Key: "Esc", Description: "Leave lesson"},
		}
	case session.StateResult:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to path"},
			{Key: "R", Description: "Try again"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
}

// Back leaves the lesson. Any request still in flight is discarded by the
// session when it returns.
func (s *LessonScreen) Back() tea.Cmd {
	if s.orch.Snapshot().Session.State != session.StateIdle {
		_ = s.orch.ReturnToDashboard()
	}
	return router.PopCmd()
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		if s.pending == 0 {
			return s, nil
		}
		s.spinner.Step()
		s.refresh()
		return s, components.SpinnerTick()

	case commandDoneMsg:
		s.pending--
		if msg.Err != nil {
			s.notice = describe(msg.Err)
		}
		s.refresh()
		return s, nil

	case components.OptionChosenMsg:
		return s.selectOption(msg.Index)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.inputEnabled() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LessonScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.snap.State {
	case session.StateChatting:
		switch key {
		case "enter":
			if !s.inputEnabled() {
				return s, nil
			}
			text := s.input.Value()
			if text == "" {
				return s, nil
			}
			s.input.Reset()
			return s, s.dispatch(func(ctx context.Context) error {
				return s.orch.SendMessage(ctx, text)
			})
		case "tab":
			if s.snap.Busy {
				return s, nil
			}
			return s, s.dispatch(s.orch.StartQuiz)
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case session.StateQuizzing:
		if s.snap.Quiz == nil {
			return s, nil
		}
		if !s.snap.Quiz.Answered {
			var cmd tea.Cmd
			s.mc, cmd = s.mc.Update(msg)
			return s, cmd
		}
		if key == "enter" || key == "space" {
			return s.advance()
		}

	case session.StateResult:
		switch key {
		case "enter":
			return s, s.Back()
		case "r", "R":
			s.outcome = nil
			return s, s.start()
		}
	}

	return s, nil
}

// start opens the lesson, refreshing it from the path first so a retry
// sees the latest stars.
func (s *LessonScreen) start() tea.Cmd {
	for _, l := range s.orch.Lessons() {
		if l.ID == s.lesson.ID {
			s.lesson = l
			break
		}
	}
	id, lang := s.lesson.ID, s.lang
	return s.dispatch(func(ctx context.Context) error {
		return s.orch.StartLesson(ctx, id, lang)
	})
}

// dispatch runs fn in the background and animates the spinner until it
// returns.
func (s *LessonScreen) dispatch(fn func(context.Context) error) tea.Cmd {
	s.notice = ""
	s.pending++
	run := func() tea.Msg {
		return commandDoneMsg{Err: fn(context.Background())}
	}
	if s.pending > 1 {
		return run
	}
	return tea.Batch(run, components.SpinnerTick())
}

func (s *LessonScreen) selectOption(index int) (screen.Screen, tea.Cmd) {
	if _, err := s.orch.SelectOption(index); err != nil {
		s.notice = describe(err)
	}
	s.refresh()
	return s, nil
}

func (s *LessonScreen) advance() (screen.Screen, tea.Cmd) {
	out, err := s.orch.Advance()
	if err != nil {
		s.notice = describe(err)
	}
	if out != nil {
		s.outcome = out
	}
	s.refresh()
	return s, nil
}

// refresh re-reads the session and keeps the widgets in step with it.
func (s *LessonScreen) refresh() {
	s.snap = s.orch.Snapshot().Session
	s.input.SetDisabled(!s.inputEnabled())
	s.spinner.Label = loadingLabel(s.snap.State)

	if s.snap.State != session.StateQuizzing || s.snap.Quiz == nil {
		s.mcKey = ""
		return
	}
	q := s.snap.Quiz
	key := fmt.Sprintf("%s/%d", s.snap.ID, q.Index)
	if key != s.mcKey {
		s.mc = components.NewMultiChoice(q.Question.Prompt, q.Question.Options)
		s.mcKey = key
	}
	if q.Answered && !s.mc.Revealed() {
		s.mc.Reveal(q.Selected, q.Question.CorrectIndex)
	}
}

func (s *LessonScreen) inputEnabled() bool {
	return s.snap.State == session.StateChatting && !s.snap.Busy
}

func loadingLabel(st session.State) string {
	switch st {
	case session.StateChatting:
		return "Vidya is typing..."
	case session.StateQuizLoading:
		return "Making a quiz just for you..."
	default:
		return "Preparing your lesson..."
	}
}

// describe turns a command error into a line for the learner.
func describe(err error) string {
	if errors.Is(err, orchestrator.ErrBusy) {
		return "Vidya is still thinking, please wait a moment."
	}
	return err.Error()
}
