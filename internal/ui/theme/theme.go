// Package theme holds the palette and shared lipgloss styles. Screens take
// colors from here rather than hard-coding hex values.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette. Tuned for dark terminals; saffron and peacock accents.
var (
	Primary   = lipgloss.Color("#7C6CF2") // iris, cursors and titles
	Secondary = lipgloss.Color("#0EA5A4") // peacock, headings and tutor
	Accent    = lipgloss.Color("#F59E0B") // saffron, header status
	Highlight = lipgloss.Color("#FACC15") // marigold, stars and badges
	Success   = lipgloss.Color("#22C55E")
	Warning   = lipgloss.Color("#EAB308")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Text styles.
var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Heading  = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	Hint     = lipgloss.NewStyle().Italic(true).Foreground(TextDim)

	ErrorText = lipgloss.NewStyle().Foreground(Error)
	Stars     = lipgloss.NewStyle().Foreground(Highlight)
	Correct   = lipgloss.NewStyle().Bold(true).Foreground(Success)
)

// List rows.
var (
	Selected   = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Locked     = lipgloss.NewStyle().Foreground(TextDim)
)

// Boxes.
var (
	// Bar frames the header and footer.
	Bar = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	TutorBubble = bubble(Secondary)

	LearnerBubble = bubble(Primary)
)

func bubble(edge color.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(edge).
		Foreground(Text).
		Padding(0, 1)
}
