// Package session implements the tutoring session state machine: a lesson
// moves from its introduction through open chat into a quiz and a result.
package session

import (
	"errors"
	"fmt"
	"strings"
)

// State is the phase a session is in. Exactly one is active at a time and
// it decides which commands are legal.
type State int

const (
	StateIdle         State = iota // No lesson; waiting on the dashboard
	StateIntroLoading              // Waiting for the lesson intro
	StateChatting                  // Free conversation with the tutor
	StateQuizLoading               // Waiting for quiz questions
	StateQuizzing                  // Answering questions
	StateResult                    // Quiz finished; result available
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateIntroLoading:
		return "intro_loading"
	case StateChatting:
		return "chatting"
	case StateQuizLoading:
		return "quiz_loading"
	case StateQuizzing:
		return "quizzing"
	case StateResult:
		return "result"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Loading reports whether the state waits on generated content.
func (s State) Loading() bool {
	return s == StateIntroLoading || s == StateQuizLoading
}

// Command names used in rejection errors.
const (
	CmdStartLesson       = "start lesson"
	CmdSendMessage       = "send message"
	CmdStartQuiz         = "start quiz"
	CmdSelectOption      = "select option"
	CmdAdvance           = "advance"
	CmdReturnToDashboard = "return to dashboard"
)

var (
	// ErrInvalidCommand is returned for a command the current state does
	// not permit. State is left untouched.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrBusy is returned for a content-requesting command issued while
	// another request is outstanding. It is an ErrInvalidCommand.
	ErrBusy = fmt.Errorf("%w: content request in flight", ErrInvalidCommand)
)

// InvalidCommandError describes a rejected command.
type InvalidCommandError struct {
	Command string
	State   State
	Err     error
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("%s rejected in state %s: %v", e.Command, e.State, e.Err)
}

func (e *InvalidCommandError) Unwrap() error { return e.Err }

// Fixed tutor texts used when content generation fails.
const (
	FallbackIntro    = "I'm having a little trouble connecting to my brain right now. Can we try again?"
	FallbackGreeting = "Hello! I'm ready to help you learn."
	FallbackReply    = "Oops, I lost my train of thought. Try saying that again?"
)

// quizKeyword in a chat message starts the quiz instead of asking the tutor.
const quizKeyword = "quiz"

// WantsQuiz reports whether a learner message asks for the quiz. The match
// is a case-insensitive substring test.
func WantsQuiz(text string) bool {
	return strings.Contains(strings.ToLower(text), quizKeyword)
}
