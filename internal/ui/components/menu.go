package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vidya/internal/ui/theme"
)

// MenuItem is one row of a Menu. Disabled rows are drawn but never
// selected; Note is drawn dimmed after the label.
type MenuItem struct {
	Label    string
	Note     string
	Action   func() tea.Cmd
	Disabled bool
}

// MenuKeys are the bindings a Menu responds to.
type MenuKeys struct {
	Up, Down, First, Last, Choose key.Binding
}

// DefaultMenuKeys uses arrows and vi keys.
var DefaultMenuKeys = MenuKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	First:  key.NewBinding(key.WithKeys("home", "g")),
	Last:   key.NewBinding(key.WithKeys("end", "G")),
	Choose: key.NewBinding(key.WithKeys("enter")),
}

var menuNote = lipgloss.NewStyle().Foreground(theme.TextDim)

// Menu is a vertical list with a cursor that skips disabled rows.
type Menu struct {
	Items    []MenuItem
	Selected int
	Keys     MenuKeys
}

// NewMenu returns a menu with the cursor on the first enabled row.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Keys: DefaultMenuKeys}
	m.Selected = m.step(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step walks from i in direction dir and returns the first enabled row,
// or -1 when there is none.
func (m Menu) step(i, dir int) int {
	for i += dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

func (m Menu) move(from, dir int) Menu {
	if next := m.step(from, dir); next >= 0 {
		m.Selected = next
	}
	return m
}

// Update moves the cursor or runs the selected row's action.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.Keys.Up):
		return m.move(m.Selected, -1), nil
	case key.Matches(kmsg, m.Keys.Down):
		return m.move(m.Selected, 1), nil
	case key.Matches(kmsg, m.Keys.First):
		return m.move(-1, 1), nil
	case key.Matches(kmsg, m.Keys.Last):
		return m.move(len(m.Items), -1), nil
	case key.Matches(kmsg, m.Keys.Choose):
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			return m, nil
		}
		if item := m.Items[m.Selected]; item.Action != nil && !item.Disabled {
			return m, item.Action()
		}
	}
	return m, nil
}

// Row renders item i without a trailing newline.
func (m Menu) Row(i int) string {
	item := m.Items[i]
	var row string
	switch {
	case i == m.Selected:
		row = theme.Selected.Render("  ▸ " + item.Label)
	case item.Disabled:
		row = theme.Locked.Render("    " + item.Label)
	default:
		row = theme.Unselected.Render("    " + item.Label)
	}
	if item.Note != "" {
		row += "  " + menuNote.Render(item.Note)
	}
	return row
}

// View renders one row per item.
func (m Menu) View() string {
	var b strings.Builder
	for i := range m.Items {
		b.WriteString(m.Row(i))
		b.WriteByte('\n')
	}
	return b.String()
}
