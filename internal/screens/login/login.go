// Package login is the role picker shown after the splash screen.
package login

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/orchestrator"
	"github.com/abhisek/vidya/internal/router"
	"github.com/abhisek/vidya/internal/screen"
	"github.com/abhisek/vidya/internal/ui/components"
	"github.com/abhisek/vidya/internal/ui/layout"
	"github.com/abhisek/vidya/internal/ui/theme"
)

// HomeFactory builds the landing screen for a signed-in user.
type HomeFactory func(catalog.User) screen.Screen

// LoginScreen lets the user pick a role and signs them in.
type LoginScreen struct {
	orch   *orchestrator.Orchestrator
	home   HomeFactory
	roles  []catalog.Role
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen. home is called with the signed-in user.
func New(orch *orchestrator.Orchestrator, home HomeFactory) *LoginScreen {
	s := &LoginScreen{
		orch:  orch,
		home:  home,
		roles: catalog.AllRoles(),
	}
	items := make([]components.MenuItem, 0, len(s.roles))
	for _, r := range s.roles {
		items = append(items, components.MenuItem{
			Label:  r.Label(),
			Action: s.loginAction(r),
		})
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *LoginScreen) Init() tea.Cmd {
	return nil
}

func (s *LoginScreen) Title() string {
	return "Sign in"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "1", "2", "3":
			i := int(kmsg.String()[0] - '1')
			if i < len(s.roles) {
				s.menu.Selected = i
				return s, s.loginAction(s.roles[i])()
			}
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// loginAction signs in synchronously; the fixture accounts need no I/O.
func (s *LoginScreen) loginAction(r catalog.Role) func() tea.Cmd {
	return func() tea.Cmd {
		u, err := s.orch.Login(r)
		if err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.errMsg = ""
		return router.ReplaceCmd(s.home(u))
	}
}

func (s *LoginScreen) View(width, height int) string {
	cw := components.CardWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Welcome to Vidya"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Who is learning today?"))
	b.WriteString("\n\n")

	for i, r := range s.roles {
		b.WriteString(components.Button(r.Label(), i == s.menu.Selected, cw-4))
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}

	card := components.Card(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
