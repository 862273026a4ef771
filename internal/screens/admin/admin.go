// Package admin is the school admin screen for drafting a weekly
// curriculum for a grade and subject.
package admin

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vidya/internal/analytics"
	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/orchestrator"
	"github.com/abhisek/vidya/internal/router"
	"github.com/abhisek/vidya/internal/screen"
	"github.com/abhisek/vidya/internal/ui/components"
	"github.com/abhisek/vidya/internal/ui/layout"
	"github.com/abhisek/vidya/internal/ui/theme"
)

const (
	fieldGrade = iota
	fieldSubject
	fieldCount
)

// draftMsg carries the result of a background curriculum request.
type draftMsg struct {
	Draft analytics.Draft
	Err   error
}

// AdminScreen drafts curricula.
type AdminScreen struct {
	orch     *orchestrator.Orchestrator
	logout   func() screen.Screen
	grades   []string
	subjects []catalog.Subject
	grade    int
	subject  int
	field    int
	draft    *analytics.Draft
	loading  bool
	spinner  components.Spinner
	errMsg   string
}

var _ screen.Screen = (*AdminScreen)(nil)
var _ screen.KeyHintProvider = (*AdminScreen)(nil)

// New creates an AdminScreen offering the grades on the lesson path.
func New(orch *orchestrator.Orchestrator, logout func() screen.Screen) *AdminScreen {
	var grades []string
	for _, l := range orch.Lessons() {
		if !slices.Contains(grades, l.Grade) {
			grades = append(grades, l.Grade)
		}
	}
	return &AdminScreen{
		orch:     orch,
		logout:   logout,
		grades:   grades,
		subjects: catalog.AllSubjects(),
		spinner:  components.Spinner{Label: "Drafting the curriculum..."},
	}
}

func (a *AdminScreen) Init() tea.Cmd {
	return nil
}

func (a *AdminScreen) Title() string {
	return "Curriculum Planner"
}

func (a *AdminScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Generate"},
		{Key: "O", Description: "Log out"},
	}
}

// Selection returns the chosen grade and subject.
func (a *AdminScreen) Selection() (string, catalog.Subject) {
	var grade string
	if len(a.grades) > 0 {
		grade = a.grades[a.grade]
	}
	return grade, a.subjects[a.subject]
}

func (a *AdminScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		if !a.loading {
			return a, nil
		}
		a.spinner.Step()
		return a, components.SpinnerTick()

	case draftMsg:
		a.loading = false
		if msg.Err != nil {
			a.errMsg = msg.Err.Error()
			return a, nil
		}
		a.errMsg = ""
		d := msg.Draft
		a.draft = &d
		return a, nil

	case tea.KeyPressMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *AdminScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		a.field = (a.field + fieldCount - 1) % fieldCount
	case "down", "j", "tab":
		a.field = (a.field + 1) % fieldCount
	case "left", "h":
		a.cycle(-1)
	case "right", "l":
		a.cycle(1)
	case "enter":
		if a.loading || len(a.grades) == 0 {
			return a, nil
		}
		a.loading = true
		grade, subject := a.Selection()
		return a, tea.Batch(func() tea.Msg {
			d, err := a.orch.DraftCurriculum(context.Background(), grade, subject)
			return draftMsg{Draft: d, Err: err}
		}, components.SpinnerTick())
	case "o", "O":
		_ = a.orch.Logout()
		next := a.logout()
		return a, router.ResetCmd(next)
	}
	return a, nil
}

func (a *AdminScreen) cycle(step int) {
	switch a.field {
	case fieldGrade:
		if n := len(a.grades); n > 0 {
			a.grade = (a.grade + step + n) % n
		}
	case fieldSubject:
		n := len(a.subjects)
		a.subject = (a.subject + step + n) % n
	}
}

func (a *AdminScreen) View(width, height int) string {
	grade, subject := a.Selection()

	var b strings.Builder
	b.WriteString(theme.Heading.Render("  Draft a curriculum"))
	b.WriteString("\n\n")
	b.WriteString(renderField("Grade", grade, a.field == fieldGrade))
	b.WriteString(renderField("Subject", subject.Icon()+" "+string(subject), a.field == fieldSubject))
	b.WriteString("\n")

	switch {
	case a.loading:
		b.WriteString("  " + a.spinner.View())
	case a.errMsg != "":
		b.WriteString("  " + theme.ErrorText.Render(a.errMsg))
	case a.draft != nil:
		b.WriteString(renderDraft(*a.draft, min(width-4, 90)))
	default:
		b.WriteString("  " + theme.Hint.Render("Press Enter to draft a weekly plan."))
	}
	return b.String()
}

func renderField(label, value string, focused bool) string {
	l := lipgloss.NewStyle().Foreground(theme.TextDim).Width(10).Render(label)
	v := "‹ " + value + " ›"
	if focused {
		return "  ▸ " + l + theme.Selected.Render(v) + "\n"
	}
	return "    " + l + theme.Unselected.Render(v) + "\n"
}

func renderDraft(d analytics.Draft, width int) string {
	title := theme.Heading.Render(fmt.Sprintf("%s %s plan", d.Grade, d.Subject))
	if d.FellBack || len(d.Topics) == 0 {
		body := theme.ErrorText.Render("Could not draft a plan right now. Try again in a moment.")
		return "  " + strings.ReplaceAll(theme.Card.Width(width).Render(title+"\n"+body), "\n", "\n  ")
	}

	var rows []string
	for _, t := range d.Topics {
		week := lipgloss.NewStyle().Foreground(theme.Accent).Width(9).Render(fmt.Sprintf("Week %d", t.Week))
		name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(t.Title)
		rows = append(rows, week+name)
		if t.Description != "" {
			rows = append(rows, strings.Repeat(" ", 9)+theme.Hint.Render(t.Description))
		}
	}
	return "  " + strings.ReplaceAll(theme.Card.Width(width).Render(title+"\n\n"+strings.Join(rows, "\n")), "\n", "\n  ")
}
