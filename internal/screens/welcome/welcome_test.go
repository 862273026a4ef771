package welcome

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vidya/internal/router"
	"github.com/abhisek/vidya/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                             { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                      { return "login" }
func (s *stubScreen) Title() string                             { return "Sign in" }

func newCounting() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func advance(w *WelcomeScreen, frames int) {
	for range frames {
		w.Update(frameMsg{})
	}
}

func TestRevealOrder(t *testing.T) {
	w, _ := newCounting()

	view := w.View(80, 30)
	assert.Contains(t, view, "அ")
	assert.NotContains(t, view, "Welcome")

	advance(w, greetAt)
	assert.Contains(t, w.View(80, 30), "Welcome")
	assert.NotContains(t, w.View(80, 30), "██")

	advance(w, bannerAt-greetAt)
	assert.Contains(t, w.View(80, 30), "██")
	assert.Contains(t, w.View(30, 30), "V I D Y A", "narrow frames use the plain banner")

	advance(w, typeAt-bannerAt+2)
	view = w.View(80, 30)
	assert.Contains(t, view, "Lea")
	assert.NotContains(t, view, "press any key")

	advance(w, len([]rune(tagline)))
	view = w.View(80, 30)
	assert.Contains(t, view, tagline)
	assert.Contains(t, view, "press any key")
}

func TestGreetingsCycle(t *testing.T) {
	w, _ := newCounting()
	advance(w, greetAt+greetFrames)
	assert.Contains(t, w.View(80, 30), "வணக்கம்")
	advance(w, greetFrames)
	assert.Contains(t, w.View(80, 30), "नमस्ते")
	advance(w, greetFrames)
	assert.Contains(t, w.View(80, 30), "Welcome")
}

func TestKeyReplacesOnce(t *testing.T) {
	w, calls := newCounting()
	advance(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Sign in", msg.Screen.Title())

	_, cmd = w.Update(tea.KeyPressMsg{Code: 'b'})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, *calls)
}

func TestStopsTickingAfterTransition(t *testing.T) {
	w, calls := newCounting()
	_, cmd := w.Update(frameMsg{})
	assert.NotNil(t, cmd, "animation keeps ticking")
	assert.Zero(t, *calls, "no transition without a key")

	w.Update(tea.KeyPressMsg{Code: 'x'})
	_, cmd = w.Update(frameMsg{})
	assert.Nil(t, cmd)
	assert.Empty(t, w.Title())
	assert.True(t, strings.Contains(w.View(80, 30), "அ"))
}
