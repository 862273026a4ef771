// Package teacher is the class dashboard: score heatmap, subject averages,
// students needing attention and the generated class insight.
package teacher

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vidya/internal/analytics"
	"github.com/abhisek/vidya/internal/orchestrator"
	"github.com/abhisek/vidya/internal/router"
	"github.com/abhisek/vidya/internal/screen"
	"github.com/abhisek/vidya/internal/ui/components"
	"github.com/abhisek/vidya/internal/ui/layout"
	"github.com/abhisek/vidya/internal/ui/theme"
)

// insightMsg carries the result of a background insight request.
type insightMsg struct {
	Text string
	Err  error
}

// TeacherScreen shows class analytics.
type TeacherScreen struct {
	orch    *orchestrator.Orchestrator
	logout  func() screen.Screen
	report  analytics.Report
	insight string
	loading bool
	spinner components.Spinner
	errMsg  string
}

var _ screen.Screen = (*TeacherScreen)(nil)
var _ screen.KeyHintProvider = (*TeacherScreen)(nil)

// New creates a TeacherScreen for the signed-in teacher.
func New(orch *orchestrator.Orchestrator, logout func() screen.Screen) *TeacherScreen {
	t := &TeacherScreen{
		orch:    orch,
		logout:  logout,
		spinner: components.Spinner{Label: "Analysing the class..."},
	}
	r, err := orch.ClassReport()
	if err != nil {
		t.errMsg = err.Error()
	}
	t.report = r
	return t
}

func (t *TeacherScreen) Init() tea.Cmd {
	return nil
}

func (t *TeacherScreen) Title() string {
	return "Class Dashboard"
}

func (t *TeacherScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "I", Description: "AI insight"},
		{Key: "O", Description: "Log out"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (t *TeacherScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		if !t.loading {
			return t, nil
		}
		t.spinner.Step()
		return t, components.SpinnerTick()

	case insightMsg:
		t.loading = false
		if msg.Err != nil {
			t.errMsg = msg.Err.Error()
			return t, nil
		}
		t.errMsg = ""
		t.insight = msg.Text
		return t, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "i", "I":
			if t.loading {
				return t, nil
			}
			t.loading = true
			return t, tea.Batch(t.requestInsight(), components.SpinnerTick())
		case "o", "O":
			_ = t.orch.Logout()
			next := t.logout()
			return t, router.ResetCmd(next)
		}
	}
	return t, nil
}

func (t *TeacherScreen) requestInsight() tea.Cmd {
	return func() tea.Msg {
		text, err := t.orch.ClassInsight(context.Background())
		return insightMsg{Text: text, Err: err}
	}
}

func (t *TeacherScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Heading.Render(fmt.Sprintf("  %d students", t.report.Students)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("   ·   average attendance %.1f%%", t.report.Attendance)))
	b.WriteString("\n\n")

	left := t.renderHeatmap()
	right := t.renderSubjects(min(width/2-4, 44)) + "\n" + t.renderLowPerformers()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
	b.WriteString("\n\n")

	b.WriteString(t.renderInsight(min(width-4, 90)))
	return b.String()
}

func (t *TeacherScreen) renderHeatmap() string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("  Performance heatmap"))
	b.WriteString("\n")
	for _, c := range t.report.Heatmap {
		cell := lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(bandColor(c.Band)).
			Bold(true).
			Width(5).
			Align(lipgloss.Center).
			Render(fmt.Sprint(c.Value))
		name := lipgloss.NewStyle().Foreground(theme.Text).Width(10).Render(c.Name)
		b.WriteString("  " + name + " " + cell + " " + theme.Hint.Render(c.Band.String()) + "\n")
	}
	return b.String()
}

func (t *TeacherScreen) renderSubjects(width int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Subject averages"))
	b.WriteString("\n")
	for _, s := range t.report.Subjects {
		label := fmt.Sprintf("%-8s", s.Subject)
		bar := components.NewProgressBar(label, s.Average/100, true, width).
			WithFill(bandColor(analytics.BandFor(int(math.Round(s.Average)))))
		b.WriteString(bar.View() + "\n")
	}
	return b.String()
}

func (t *TeacherScreen) renderLowPerformers() string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Needs attention"))
	b.WriteString("\n")
	if len(t.report.LowPerformers) == 0 {
		b.WriteString(theme.Hint.Render("Everyone is on track."))
		return b.String()
	}
	for _, p := range t.report.LowPerformers {
		line := fmt.Sprintf("%s  Math %d · English %d", p.StudentName, p.MathScore, p.EnglishScore)
		if len(p.WeakTopics) > 0 {
			line += "  (" + strings.Join(p.WeakTopics, ", ") + ")"
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("! ") +
			lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n")
	}
	return b.String()
}

func (t *TeacherScreen) renderInsight(width int) string {
	var content string
	switch {
	case t.loading:
		content = t.spinner.View()
	case t.errMsg != "":
		content = theme.ErrorText.Render(t.errMsg)
	case t.insight != "":
		content = lipgloss.NewStyle().Foreground(theme.Text).Render(t.insight)
	default:
		content = theme.Hint.Render("Press I for an AI summary of the class.")
	}
	title := theme.Heading.Render("AI insight")
	return "  " + strings.ReplaceAll(theme.Card.Width(width).Render(title+"\n"+content), "\n", "\n  ")
}

func bandColor(b analytics.Band) color.Color {
	switch b {
	case analytics.BandGood:
		return theme.Success
	case analytics.BandAverage:
		return theme.Warning
	default:
		return theme.Error
	}
}
