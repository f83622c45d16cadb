package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hosbabel/hosbabel/internal/console"
	"github.com/hosbabel/hosbabel/internal/models"
)

type (
	babelStartMsg struct{}
	babelTickMsg  time.Time
)

// ConsoleOptions configures the console screen
type ConsoleOptions struct {
	// Columns is the babel wrap width; zero uses console.DefaultColumns
	Columns  int
	Delay    time.Duration
	Interval time.Duration
}

// ConsoleModel is the fake-login terminal screen
type ConsoleModel struct {
	machine  console.Machine
	input    textinput.Model
	keys     consoleKeyMap
	delay    time.Duration
	interval time.Duration

	width  int
	height int
}

// NewConsoleModel creates the console screen
func NewConsoleModel(opts ConsoleOptions) ConsoleModel {
	if opts.Delay <= 0 {
		opts.Delay = models.BabelDelay
	}
	if opts.Interval <= 0 {
		opts.Interval = models.BabelInterval
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.EchoCharacter = '*'
	ti.TextStyle = consoleLineStyle
	ti.Focus()

	m := ConsoleModel{
		machine:  console.NewMachine(console.WithColumns(opts.Columns)),
		input:    ti,
		keys:     defaultConsoleKeys(),
		delay:    opts.Delay,
		interval: opts.Interval,
	}
	m.syncInput()
	return m
}

// Machine returns the underlying state machine
func (m ConsoleModel) Machine() console.Machine {
	return m.machine
}

// Init starts the cursor blink
func (m ConsoleModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input and babel timers
func (m ConsoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 16
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}
		if !m.machine.AcceptsInput() {
			return m, nil
		}

	case babelStartMsg:
		m.machine = m.machine.EnterBabel()
		return m, m.babelTick()

	case babelTickMsg:
		if m.machine.State() != console.StateBabel {
			return m, nil
		}
		m.machine = m.machine.Tick()
		return m, m.babelTick()
	}

	var cmd tea.Cmd
	if m.machine.AcceptsInput() {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// submit feeds the typed line to the machine
func (m ConsoleModel) submit() (ConsoleModel, tea.Cmd) {
	if !m.machine.AcceptsInput() {
		return m, nil
	}
	var eff console.Effect
	m.machine, eff = m.machine.Submit(m.input.Value())
	m.input.Reset()
	m.syncInput()

	if eff == console.EffectScheduleBabel {
		return m, tea.Tick(m.delay, func(time.Time) tea.Msg {
			return babelStartMsg{}
		})
	}
	return m, nil
}

func (m ConsoleModel) babelTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return babelTickMsg(t)
	})
}

// syncInput matches echo mode and focus to the machine state
func (m *ConsoleModel) syncInput() {
	if m.machine.Masked() {
		m.input.EchoMode = textinput.EchoPassword
	} else {
		m.input.EchoMode = textinput.EchoNormal
	}
	if m.machine.AcceptsInput() {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// View renders the terminal
func (m ConsoleModel) View() string {
	width, height := m.width, m.height
	if width == 0 || height == 0 {
		width, height = 80, 24
	}

	var rows []string
	for _, line := range m.machine.Lines() {
		if line.Kind == models.LineBabel {
			rows = append(rows, consoleBabelStyle.Render(line.Text))
		} else {
			rows = append(rows, consoleLineStyle.Render(line.Text))
		}
	}
	if m.machine.AcceptsInput() {
		rows = append(rows, consolePromptStyle.Render(m.machine.Prompt())+m.input.View())
	}

	// keep the tail that fits inside the panel
	visible := height - 4
	if visible < 1 {
		visible = 1
	}
	if len(rows) > visible {
		rows = rows[len(rows)-visible:]
	}

	body := strings.Join(rows, "\n")
	panel := consolePanelStyle.
		Width(width - 2).
		Height(height - 3).
		Render(body)
	footer := statusBarStyle.Render(m.keys.Quit.Help().Key + " " + m.keys.Quit.Help().Desc)
	return lipgloss.JoinVertical(lipgloss.Left, panel, footer)
}
