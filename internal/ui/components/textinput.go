package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vidya/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with Vidya styling.
type TextInput struct {
	Model    textinput.Model
	MaxWidth int
	disabled bool
}

// NewTextInput creates a new styled text input.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{
		Model:    ti,
		MaxWidth: charLimit,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Keys are ignored while the input is disabled.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok && t.disabled {
		return t, nil
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	if t.disabled {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("> " + t.Model.Value())
	}
	return t.Model.View()
}

// Value returns the trimmed input value.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.SetValue("")
}

// SetDisabled toggles whether the input accepts keys.
func (t *TextInput) SetDisabled(disabled bool) {
	t.disabled = disabled
}

// Disabled reports whether the input ignores keys.
func (t TextInput) Disabled() bool {
	return t.disabled
}
