// Package dashboard is the student's home: the lesson path, progress,
// badges and the lesson language toggle.
package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/orchestrator"
	"github.com/abhisek/vidya/internal/router"
	"github.com/abhisek/vidya/internal/screen"
	"github.com/abhisek/vidya/internal/screens/lesson"
	"github.com/abhisek/vidya/internal/session"
	"github.com/abhisek/vidya/internal/ui/components"
	"github.com/abhisek/vidya/internal/ui/layout"
	"github.com/abhisek/vidya/internal/ui/theme"
)

// DashboardScreen shows the student's lesson path.
type DashboardScreen struct {
	orch    *orchestrator.Orchestrator
	lang    catalog.Language
	logout  func() screen.Screen
	lessons []catalog.Lesson
	badges  []catalog.Badge
	menu    components.Menu
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen. lang is the initial lesson language and
// logout builds the screen shown after signing out.
func New(orch *orchestrator.Orchestrator, lang catalog.Language, logout func() screen.Screen) *DashboardScreen {
	d := &DashboardScreen{
		orch:   orch,
		lang:   lang,
		logout: logout,
		badges: catalog.SeedBadges(),
	}
	d.reload()
	return d
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	return "My Learning Path"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start lesson"},
		{Key: "L", Description: "Language: " + d.lang.Label()},
		{Key: "O", Description: "Log out"},
	}
}

// Language returns the language new lessons start in.
func (d *DashboardScreen) Language() catalog.Language {
	return d.lang
}

// reload rebuilds the lesson menu, keeping the cursor where it was.
func (d *DashboardScreen) reload() {
	selected := d.menu.Selected
	d.lessons = d.orch.Lessons()

	items := make([]components.MenuItem, 0, len(d.lessons))
	for _, l := range d.lessons {
		items = append(items, components.MenuItem{
			Label:    lessonLabel(l),
			Note:     lessonNote(l),
			Action:   d.startAction(l),
			Disabled: l.Locked,
		})
	}
	menu := components.NewMenu(items)
	if selected > 0 && selected < len(items) && !items[selected].Disabled {
		menu.Selected = selected
	}
	d.menu = menu
}

func (d *DashboardScreen) startAction(l catalog.Lesson) func() tea.Cmd {
	return func() tea.Cmd {
		// A lesson left while its first request was still being sent can
		// open after the screen closed; drop it before starting another.
		if d.orch.Snapshot().Session.State != session.StateIdle {
			_ = d.orch.ReturnToDashboard()
		}
		return router.PushCmd(lesson.New(d.orch, l, d.lang))
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ResumeMsg:
		d.reload()
		return d, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "l", "L":
			d.lang = d.lang.Next()
			return d, nil
		case "o", "O":
			_ = d.orch.Logout()
			next := d.logout()
			return d, router.ResetCmd(next)
		}
	}

	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) View(width, height int) string {
	v := d.orch.Snapshot()

	var b strings.Builder

	if v.User != nil {
		greeting := fmt.Sprintf("  Namaste, %s!", v.User.Name)
		info := fmt.Sprintf("%s  ·  %d XP  ·  %s", v.User.Grade, v.User.XP, d.lang.Label())
		b.WriteString(theme.Heading.Render(greeting))
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(info))
		b.WriteString("\n\n")
	}

	pct := 0.0
	if len(v.Lessons) > 0 {
		pct = float64(v.Completed) / float64(len(v.Lessons))
	}
	bar := components.NewProgressBar(
		fmt.Sprintf("  %d/%d lessons  %s %d", v.Completed, len(v.Lessons), theme.Stars.Render("★"), v.Stars),
		pct, true, min(width-4, 70),
	)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(d.renderPath(height - 8))
	b.WriteString("\n")
	b.WriteString(d.renderBadges())

	return b.String()
}

// renderPath renders the lesson menu grouped by grade, scrolled so the
// cursor stays visible within rows lines.
func (d *DashboardScreen) renderPath(rows int) string {
	lines := make([]string, 0, len(d.lessons)+8)
	cursorLine := 0
	grade := ""
	for i, l := range d.lessons {
		if l.Grade != grade {
			grade = l.Grade
			lines = append(lines, theme.Heading.Render("  "+grade))
		}
		if i == d.menu.Selected {
			cursorLine = len(lines)
		}
		lines = append(lines, d.menu.Row(i))
	}

	if rows < 3 {
		rows = 3
	}
	start := 0
	if cursorLine >= rows {
		start = cursorLine - rows + 1
	}
	end := min(start+rows, len(lines))
	return strings.Join(lines[start:end], "\n") + "\n"
}

func lessonLabel(l catalog.Lesson) string {
	return fmt.Sprintf("%s %s %s", l.StatusIcon(), l.Subject.Icon(), l.Title)
}

func lessonNote(l catalog.Lesson) string {
	if !l.Completed {
		return ""
	}
	return catalog.StarString(l.Stars)
}

func (d *DashboardScreen) renderBadges() string {
	parts := make([]string, 0, len(d.badges))
	for _, bd := range d.badges {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if !bd.Unlocked {
			style = theme.Locked
		}
		parts = append(parts, style.Render(bd.Icon+" "+bd.Name))
	}
	return "  " + theme.Heading.Render("Badges") + "  " + strings.Join(parts, "   ")
}
