// Package welcome is the splash shown at startup. It greets in each
// lesson language, types out the tagline and waits for a key.
package welcome

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vidya/internal/router"
	"github.com/abhisek/vidya/internal/screen"
	"github.com/abhisek/vidya/internal/ui/theme"
)

const (
	frameEvery = 120 * time.Millisecond

	// Frame counts at which each part appears.
	greetAt  = 3
	bannerAt = 8
	typeAt   = 12

	greetFrames = 10 // frames each greeting stays up
	tagline     = "Learn in your own language!"
)

var greetings = []string{"Welcome", "வணக்கம்", "नमस्ते"}

const slateArt = `╭────────────────╮
│   அ   A   अ    │
│   1   2   3    │
│   ○   △   □    │
╰──────┬──┬──────╯
       ╵  ╵`

const bannerArt = `██╗   ██╗██╗██████╗ ██╗   ██╗ █████╗
██║   ██║██║██╔══██╗╚██╗ ██╔╝██╔══██╗
██║   ██║██║██║  ██║ ╚████╔╝ ███████║
╚██╗ ██╔╝██║██║  ██║  ╚██╔╝  ██╔══██║
 ╚████╔╝ ██║██████╔╝   ██║   ██║  ██║
  ╚═══╝  ╚═╝╚═════╝    ╚═╝   ╚═╝  ╚═╝`

// bannerMinWidth is the narrowest frame the block-letter banner fits.
const bannerMinWidth = 42

var (
	slateStyle   = lipgloss.NewStyle().Foreground(theme.Secondary)
	greetStyle   = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	bannerStyle  = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	taglineStyle = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
)

type frameMsg struct{}

// WelcomeScreen animates until any key is pressed, then replaces itself
// with the screen built by next.
type WelcomeScreen struct {
	next  func() screen.Screen
	frame int
	done  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New returns the splash. next is called once, on the first key press.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(frameEvery, func(time.Time) tea.Msg { return frameMsg{} })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.done {
			return w, nil
		}
		w.frame++
		return w, tick()
	case tea.KeyPressMsg:
		if w.done {
			return w, nil
		}
		w.done = true
		return w, router.ReplaceCmd(w.next())
	}
	return w, nil
}

// typed returns how much of the tagline has been revealed.
func (w *WelcomeScreen) typed() string {
	if w.frame < typeAt {
		return ""
	}
	runes := []rune(tagline)
	return string(runes[:min(w.frame-typeAt+1, len(runes))])
}

func (w *WelcomeScreen) View(width, height int) string {
	parts := []string{slateStyle.Render(slateArt)}

	if w.frame >= greetAt {
		g := greetings[((w.frame-greetAt)/greetFrames)%len(greetings)]
		parts = append(parts, "", greetStyle.Render(g))
	}
	if w.frame >= bannerAt {
		banner := "V I D Y A"
		if width >= bannerMinWidth {
			banner = bannerArt
		}
		parts = append(parts, "", bannerStyle.Render(banner))
	}
	if text := w.typed(); text != "" {
		parts = append(parts, "", taglineStyle.Render(text))
		if text == tagline {
			parts = append(parts, "", theme.Hint.Render("press any key to continue"))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
