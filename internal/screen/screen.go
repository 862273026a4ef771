// Package screen defines what the router needs from a screen, plus the
// optional hooks the app frame looks for.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vidya/internal/ui/layout"
)

// Screen is one page of the terminal app. View draws only the body; the
// app adds the header and footer around it.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title is shown in the header. The splash screen returns "".
	Title() string
}

// KeyHintProvider replaces the generic footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackHandler takes over Esc, for screens that must release something
// before leaving. Back returns the navigation command.
type BackHandler interface {
	Back() tea.Cmd
}

// ResumeMsg tells a screen it is on top again after the one above closed.
type ResumeMsg struct{}
