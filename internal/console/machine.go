// Package console implements the scripted fake-login terminal shown after
// the boot animation. The Machine is free of timers and rendering; the screen
// drives it by submitting input and delivering ticks.
package console

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/hosbabel/hosbabel/internal/models"
)

// State is the login step the terminal is in
type State int

const (
	StateLoginUser State = iota
	StateLoginPass
	StateError
	StateBabel
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateLoginUser:
		return "LOGIN_USER"
	case StateLoginPass:
		return "LOGIN_PASS"
	case StateError:
		return "ERROR"
	case StateBabel:
		return "BABEL"
	default:
		return "UNKNOWN"
	}
}

// Effect tells the screen what to schedule after a transition
type Effect int

const (
	EffectNone Effect = iota
	// EffectScheduleBabel asks for EnterBabel after models.BabelDelay
	EffectScheduleBabel
)

// Machine is the fake-login state machine. Transitions return a new Machine
// and leave the receiver untouched.
type Machine struct {
	state   State
	lines   *models.Buffer[models.ConsoleLine]
	columns int
}

// Option configures a Machine
type Option func(*Machine)

// WithColumns sets the babel wrap width. Values narrower than the token are
// raised to the token width.
func WithColumns(n int) Option {
	return func(m *Machine) {
		m.columns = n
	}
}

// WithMaxLines sets the line buffer cap
func WithMaxLines(n int) Option {
	return func(m *Machine) {
		m.lines = models.NewBuffer[models.ConsoleLine](n)
	}
}

// NewMachine creates a terminal waiting for a username, with the greeting
// already printed.
func NewMachine(opts ...Option) Machine {
	m := Machine{
		state:   StateLoginUser,
		lines:   models.NewBuffer[models.ConsoleLine](models.MaxConsoleLines),
		columns: DefaultColumns,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.columns <= 0 {
		m.columns = DefaultColumns
	}
	if w := runewidth.StringWidth(BabelToken); m.columns < w {
		m.columns = w
	}
	for _, text := range greeting {
		m.lines.Append(models.NewConsoleLine(text, models.LineNormal))
	}
	return m
}

// State returns the current step
func (m Machine) State() State {
	return m.state
}

// Lines returns the printed lines, oldest first
func (m Machine) Lines() []models.ConsoleLine {
	return m.lines.Items()
}

// Columns returns the babel wrap width
func (m Machine) Columns() int {
	return m.columns
}

// AcceptsInput reports whether Submit does anything in the current state
func (m Machine) AcceptsInput() bool {
	return m.state == StateLoginUser || m.state == StateLoginPass
}

// Masked reports whether input should be hidden while typed
func (m Machine) Masked() bool {
	return m.state == StateLoginPass
}

// Prompt returns the label shown before the input field
func (m Machine) Prompt() string {
	switch m.state {
	case StateLoginUser:
		return "user: "
	case StateLoginPass:
		return "password: "
	default:
		return ""
	}
}

// Submit feeds one line of input. Input is ignored once the login has failed.
func (m Machine) Submit(input string) (Machine, Effect) {
	switch m.state {
	case StateLoginUser:
		next := m.clone()
		name := input
		if strings.TrimSpace(name) == "" {
			name = BlankUsername
		}
		next.println("user: " + name)
		next.state = StateLoginPass
		return next, EffectNone

	case StateLoginPass:
		next := m.clone()
		next.println("password: " + MaskPassword(input))
		for _, text := range failureBanner {
			next.println(text)
		}
		for _, text := range introScript {
			next.println(text)
		}
		next.state = StateError
		return next, EffectScheduleBabel
	}
	return m, EffectNone
}

// EnterBabel moves a failed login into the babel loop. Other states are
// returned unchanged.
func (m Machine) EnterBabel() Machine {
	if m.state != StateError {
		return m
	}
	next := m.clone()
	next.state = StateBabel
	return next
}

// Tick appends one token to the current babel line, starting a new line when
// the token would overflow the column width. Only meaningful in StateBabel.
func (m Machine) Tick() Machine {
	if m.state != StateBabel {
		return m
	}
	next := m.clone()

	last, ok := next.lines.Last()
	if ok && last.Kind == models.LineBabel {
		candidate := last.Text + BabelToken
		if runewidth.StringWidth(candidate) <= next.columns {
			last.Text = candidate
			next.lines.SetLast(last)
			return next
		}
	}
	next.lines.Append(models.NewConsoleLine(BabelToken, models.LineBabel))
	return next
}

// MaskPassword returns one asterisk per rune, at least one and at most
// MaxMaskLength.
func MaskPassword(password string) string {
	n := utf8.RuneCountInString(password)
	if n < 1 {
		n = 1
	}
	if n > MaxMaskLength {
		n = MaxMaskLength
	}
	return strings.Repeat("*", n)
}

func (m Machine) clone() Machine {
	m.lines = m.lines.Clone()
	return m
}

func (m *Machine) println(text string) {
	m.lines.Append(models.NewConsoleLine(text, models.LineNormal))
}
