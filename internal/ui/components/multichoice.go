package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vidya/internal/ui/theme"
)

// OptionChosenMsg reports the option the learner picked.
type OptionChosenMsg struct {
	Index int
}

// optionLetters label up to four options; later ones are numbered.
const optionLetters = "ABCD"

var (
	promptStyle  = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	rightStyle   = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	wrongStyle   = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	faintStyle   = lipgloss.NewStyle().Foreground(theme.TextDim)
	prevOption   = key.NewBinding(key.WithKeys("up", "k", "left"))
	nextOption   = key.NewBinding(key.WithKeys("down", "j", "right"))
	chooseOption = key.NewBinding(key.WithKeys("enter", "space"))
)

// MultiChoice asks one question. It does not know the answer: the owner
// records the choice and then calls Reveal with the correct index.
type MultiChoice struct {
	Prompt  string
	Options []string
	Cursor  int

	revealed bool
	chosen   int
	correct  int
}

// NewMultiChoice returns an unanswered question with the cursor on the
// first option.
func NewMultiChoice(prompt string, options []string) MultiChoice {
	return MultiChoice{Prompt: prompt, Options: options, chosen: -1, correct: -1}
}

// Update moves the cursor. Enter, space, 1-4 or a-d choose; a revealed
// question ignores input.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || m.revealed {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, prevOption):
		m.Cursor = max(m.Cursor-1, 0)
		return m, nil
	case key.Matches(kmsg, nextOption):
		m.Cursor = min(m.Cursor+1, len(m.Options)-1)
		return m, nil
	case key.Matches(kmsg, chooseOption):
		return m, chosen(m.Cursor)
	}

	if i, ok := shortcut(kmsg.String()); ok && i < len(m.Options) {
		m.Cursor = i
		return m, chosen(i)
	}
	return m, nil
}

// shortcut maps "1".."4" and "a".."d" to an option index.
func shortcut(k string) (int, bool) {
	if len(k) != 1 {
		return 0, false
	}
	switch c := k[0]; {
	case c >= '1' && c <= '4':
		return int(c - '1'), true
	case c >= 'a' && c <= 'd':
		return int(c - 'a'), true
	}
	return 0, false
}

func chosen(i int) tea.Cmd {
	return func() tea.Msg { return OptionChosenMsg{Index: i} }
}

// Reveal locks the question and marks the chosen and correct options.
func (m *MultiChoice) Reveal(chosen, correct int) {
	m.revealed = true
	m.chosen = chosen
	m.correct = correct
	m.Cursor = chosen
}

// Revealed reports whether Reveal has been called.
func (m MultiChoice) Revealed() bool {
	return m.revealed
}

// View renders the prompt and the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render(m.Prompt))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := fmt.Sprint(i + 1)
		if i < len(optionLetters) {
			label = optionLetters[i : i+1]
		}
		cursor := "  "
		if i == m.Cursor && !m.revealed {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", cursor, label, opt)

		switch {
		case !m.revealed && i == m.Cursor:
			line = theme.Selected.Render(line)
		case !m.revealed:
			line = theme.Unselected.Render(line)
		case i == m.correct:
			line = rightStyle.Render(line + "  ✓")
		case i == m.chosen:
			line = wrongStyle.Render(line + "  ✗")
		default:
			line = faintStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
