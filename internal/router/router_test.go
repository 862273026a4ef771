package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vidya/internal/screen"
)

type stubScreen struct {
	title   string
	inits   int
	updates int
}

func (s *stubScreen) Init() tea.Cmd                             { s.inits++; return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(w, h int) string                      { return s.title }
func (s *stubScreen) Title() string                             { return s.title }

// apply runs cmd and feeds its message back into r.
func apply(r *Router, cmd tea.Cmd) tea.Cmd {
	return r.Update(cmd())
}

func titles(r *Router) []string {
	out := make([]string, len(r.stack))
	for i, s := range r.stack {
		out[i] = s.Title()
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNavigation(t *testing.T) {
	login := &stubScreen{title: "login"}
	dash := &stubScreen{title: "dashboard"}
	lesson := &stubScreen{title: "lesson"}
	quiz := &stubScreen{title: "quiz"}

	r := New(login)
	steps := []struct {
		name string
		cmd  tea.Cmd
		want []string
	}{
		{"sign in replaces login", ReplaceCmd(dash), []string{"dashboard"}},
		{"open lesson", PushCmd(lesson), []string{"dashboard", "lesson"}},
		{"replace keeps depth", ReplaceCmd(quiz), []string{"dashboard", "quiz"}},
		{"back", PopCmd(), []string{"dashboard"}},
		{"back at bottom is a no-op", PopCmd(), []string{"dashboard"}},
		{"push again", PushCmd(lesson), []string{"dashboard", "lesson"}},
		{"sign out resets", ResetCmd(login), []string{"login"}},
	}
	for _, st := range steps {
		apply(r, st.cmd)
		if got := titles(r); !equal(got, st.want) {
			t.Fatalf("%s: stack = %v, want %v", st.name, got, st.want)
		}
	}

	if dash.inits != 1 || lesson.inits != 2 || quiz.inits != 1 || login.inits != 1 {
		t.Errorf("inits login=%d dash=%d lesson=%d quiz=%d", login.inits, dash.inits, lesson.inits, quiz.inits)
	}
}

func TestPopResumesScreenBelow(t *testing.T) {
	r := New(&stubScreen{title: "dashboard"})
	r.Push(&stubScreen{title: "lesson"})

	cmd := r.Pop()
	if cmd == nil {
		t.Fatal("expected a resume command after pop")
	}
	if _, ok := cmd().(screen.ResumeMsg); !ok {
		t.Errorf("expected screen.ResumeMsg, got %T", cmd())
	}
	if r.Pop() != nil {
		t.Error("pop at bottom should not produce a command")
	}
}

func TestUpdateForwardsToActiveOnly(t *testing.T) {
	below := &stubScreen{title: "dashboard"}
	top := &stubScreen{title: "lesson"}
	r := New(below)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if top.updates != 1 || below.updates != 0 {
		t.Errorf("updates top=%d below=%d", top.updates, below.updates)
	}
	if r.View(80, 24) != "lesson" {
		t.Errorf("view = %q", r.View(80, 24))
	}
}
