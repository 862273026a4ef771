package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vidya/internal/ui/theme"
)

// CardWidth returns the inner width for centered cards in a frame of the
// given width, clamped to 20..64 columns.
func CardWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 64)
}

// Card wraps content in a rounded, centered card cw columns wide.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// Button renders a bordered menu button. The selected button is filled
// with the highlight color and marked with a pointer.
func Button(label string, selected bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if !selected {
		return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
	return style.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Highlight).
		BorderForeground(theme.Highlight).
		Render("▸ " + label)
}
