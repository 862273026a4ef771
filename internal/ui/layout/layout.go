// Package layout draws the frame shared by every screen: a header bar, the
// screen body and a footer of key hints.
package layout

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vidya/internal/ui/theme"
)

// Smallest terminal the lesson chat still fits in.
const (
	MinWidth  = 64
	MinHeight = 20
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Chrome is what surrounds a screen body.
type Chrome struct {
	Title  string
	Status string // right side of the header, e.g. the signed-in user
	Hints  []KeyHint
}

var (
	brandStyle  = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(theme.Text)
	statusStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	keyStyle    = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(theme.TextDim)
)

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// TooSmall asks the user to enlarge the terminal.
func TooSmall(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height))
}

// Header renders the brand on the left, the title centered and the status
// on the right.
func (c Chrome) Header(width int) string {
	left := brandStyle.Render("  Vidya")
	center := titleStyle.Render(c.Title)
	right := statusStyle.Render(c.Status)

	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)

	line := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
	return theme.Bar.Width(width).Render(line)
}

// Footer renders the key hints.
func (c Chrome) Footer(width int) string {
	parts := make([]string, len(c.Hints))
	for i, h := range c.Hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return theme.Bar.Width(width).Render("  " + strings.Join(parts, "   "))
}

// Compose stacks header, body and footer into exactly height lines. body
// is asked for the height left between the bars.
func Compose(c Chrome, width, height int, body func(width, height int) string) string {
	header := c.Header(width)
	footer := c.Footer(width)
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body(width, bodyHeight))
	return header + "\n" + content + "\n" + footer
}

// Centered renders text centered across width in the given color.
func Centered(text string, fg color.Color, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Render(text)
}
