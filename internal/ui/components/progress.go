package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vidya/internal/ui/theme"
)

// ProgressBar is a one-line bar with an optional label and percentage.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0..1, clamped when rendered
	ShowPercent bool
	Width       int // total width including label and percentage
	Fill        color.Color
}

// NewProgressBar creates a progress bar filled with the secondary color.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Fill:        theme.Secondary,
	}
}

// WithFill returns a copy of p filled with c.
func (p ProgressBar) WithFill(c color.Color) ProgressBar {
	p.Fill = c
	return p
}

// View renders the bar.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	pct := min(max(p.Percent, 0), 1)
	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf("  %3d%%", int(pct*100+0.5))
	}

	barWidth := max(p.Width-lipgloss.Width(b.String())-len(suffix), 4)
	filled := int(float64(barWidth) * pct)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	b.WriteString(lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled)))
	if suffix != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))
	}
	return b.String()
}
