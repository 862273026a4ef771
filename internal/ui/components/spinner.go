package components

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vidya/internal/ui/theme"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerTickMsg advances every Spinner on the active screen.
type SpinnerTickMsg time.Time

// SpinnerTick schedules the next spinner frame.
func SpinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return SpinnerTickMsg(t)
	})
}

// Spinner is a small loading indicator with a label.
type Spinner struct {
	Label string
	frame int
}

// Step advances one frame.
func (s *Spinner) Step() {
	s.frame = (s.frame + 1) % len(spinnerFrames)
}

// View renders the current frame and label.
func (s Spinner) View() string {
	return lipgloss.NewStyle().Foreground(theme.Accent).Render(spinnerFrames[s.frame]) +
		" " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.Label)
}
