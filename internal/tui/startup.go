package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hosbabel/hosbabel/internal/logger"
)

// StartupOptions configures the boot-then-console sequence
type StartupOptions struct {
	SkipBoot     bool
	BootDuration time.Duration
	Console      ConsoleOptions
}

// StartupModel plays the boot animation and then hands over to the console
type StartupModel struct {
	boot    BootModel
	console ConsoleModel
	booting bool
	size    tea.WindowSizeMsg
}

// NewStartupModel creates the sequence
func NewStartupModel(opts StartupOptions) StartupModel {
	log := logger.Named("boot")
	return StartupModel{
		boot: NewBootModel(opts.BootDuration, func() {
			log.Debug("boot animation completed")
		}),
		console: NewConsoleModel(opts.Console),
		booting: !opts.SkipBoot,
	}
}

// Booting reports whether the animation is still on screen
func (m StartupModel) Booting() bool {
	return m.booting
}

// Init starts whichever screen is active
func (m StartupModel) Init() tea.Cmd {
	if m.booting {
		return m.boot.Init()
	}
	return m.console.Init()
}

// Update routes messages to the active screen
func (m StartupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.size = size
		b, _ := m.boot.Update(size)
		m.boot = b.(BootModel)
		c, _ := m.console.Update(size)
		m.console = c.(ConsoleModel)
		return m, nil
	}

	if _, ok := msg.(bootDoneMsg); ok {
		m.booting = false
		return m, m.console.Init()
	}

	if m.booting {
		b, cmd := m.boot.Update(msg)
		m.boot = b.(BootModel)
		return m, cmd
	}
	c, cmd := m.console.Update(msg)
	m.console = c.(ConsoleModel)
	return m, cmd
}

// View renders the active screen
func (m StartupModel) View() string {
	if m.booting {
		return m.boot.View()
	}
	return m.console.View()
}

// RunStartup runs the boot animation followed by the console
func RunStartup(opts StartupOptions) error {
	p := tea.NewProgram(NewStartupModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunConsole runs the console on its own
func RunConsole(opts ConsoleOptions) error {
	p := tea.NewProgram(NewConsoleModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
