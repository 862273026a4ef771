package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/orchestrator"
	"github.com/abhisek/vidya/internal/router"
	"github.com/abhisek/vidya/internal/screen"
	"github.com/abhisek/vidya/internal/screens/admin"
	"github.com/abhisek/vidya/internal/screens/dashboard"
	"github.com/abhisek/vidya/internal/screens/login"
	"github.com/abhisek/vidya/internal/screens/teacher"
	"github.com/abhisek/vidya/internal/screens/welcome"
	"github.com/abhisek/vidya/internal/ui/layout"
)

// Options configures the terminal app.
type Options struct {
	Orchestrator *orchestrator.Orchestrator
	Language     catalog.Language // initial lesson language
	SkipWelcome  bool
	Logger       *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	orch   *orchestrator.Orchestrator
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(opts Options) AppModel {
	orch := opts.Orchestrator

	var loginScreen func() screen.Screen
	home := func(u catalog.User) screen.Screen {
		switch u.Role {
		case catalog.RoleTeacher:
			return teacher.New(orch, loginScreen)
		case catalog.RoleAdmin:
			return admin.New(orch, loginScreen)
		default:
			return dashboard.New(orch, opts.Language, loginScreen)
		}
	}
	loginScreen = func() screen.Screen {
		return login.New(orch, home)
	}

	var first screen.Screen = welcome.New(loginScreen)
	if opts.SkipWelcome {
		first = loginScreen()
	}
	return AppModel{
		router: router.New(first),
		orch:   orch,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if b, ok := m.router.Active().(screen.BackHandler); ok {
				return m, b.Back()
			}
			if m.router.Depth() > 1 {
				return m, router.PopCmd()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.TooSmall(m.width, m.height))
		return v
	}

	active := m.router.Active()
	chrome := layout.Chrome{Status: m.status(), Hints: m.hints(active)}
	if active != nil {
		chrome.Title = active.Title()
	}
	v.SetContent(layout.Compose(chrome, m.width, m.height, m.router.View))
	return v
}

// hints returns the active screen's key hints, or generic ones.
func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		return hp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}


// status is the header's right-hand text for the signed-in user.
func (m AppModel) status() string {
	u, ok := m.orch.User()
	if !ok {
		return ""
	}
	if u.Role == catalog.RoleStudent {
		return fmt.Sprintf("%s  ✦ %d XP", u.Name, u.XP)
	}
	return u.Name
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("app")

	logger.Info("starting terminal app", zap.String("language", string(opts.Language)))
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		logger.Error("terminal app failed", zap.Error(err))
		return fmt.Errorf("running program: %w", err)
	}
	logger.Info("terminal app exited")
	return nil
}
