package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hosbabel/hosbabel/internal/boot"
)

// bootFrameInterval is the repaint period of the boot animation
const bootFrameInterval = 60 * time.Millisecond

const (
	bootTitle    = "HOS_BABEL"
	bootSubtitle = "HYPER OPERATING SYSTEM"
)

type (
	bootTickMsg time.Time
	// bootDoneMsg is emitted once when the animation completes or is skipped
	bootDoneMsg struct{}
)

// BootModel plays the boot animation
type BootModel struct {
	anim  *boot.Animation
	frame boot.Frame
	done  bool
	keys  consoleKeyMap

	width  int
	height int
}

// NewBootModel creates the boot screen. onDone runs once when the animation
// reaches its end; it does not run when the animation is skipped.
func NewBootModel(duration time.Duration, onDone func()) BootModel {
	return BootModel{
		anim:  boot.NewAnimation(duration, onDone),
		frame: boot.At(0),
		keys:  defaultConsoleKeys(),
	}
}

func bootTick() tea.Cmd {
	return tea.Tick(bootFrameInterval, func(t time.Time) tea.Msg {
		return bootTickMsg(t)
	})
}

// Init starts the frame clock
func (m BootModel) Init() tea.Cmd {
	return bootTick()
}

// Done reports whether the animation has finished or been skipped
func (m BootModel) Done() bool {
	return m.done
}

// Frame returns the most recent frame
func (m BootModel) Frame() boot.Frame {
	return m.frame
}

// Update advances the animation
func (m BootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.anim.Stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Skip), key.Matches(msg, m.keys.Submit):
			if m.done {
				return m, nil
			}
			m.anim.Stop()
			m.done = true
			return m, finishBoot
		}

	case bootTickMsg:
		if m.done {
			return m, nil
		}
		frame, done := m.anim.Step(time.Time(msg))
		m.frame = frame
		if done {
			m.done = true
			return m, finishBoot
		}
		return m, bootTick()
	}
	return m, nil
}

func finishBoot() tea.Msg {
	return bootDoneMsg{}
}

// View renders the current frame
func (m BootModel) View() string {
	width, height := m.width, m.height
	if width == 0 || height == 0 {
		width, height = 80, 24
	}
	return renderBootFrame(m.frame, width, height)
}

// renderBootFrame draws a frame into a width×height block
func renderBootFrame(f boot.Frame, width, height int) string {
	var rows []string

	// crosshair
	cross := lipgloss.NewStyle().Foreground(fade(colorPrimary, f.CrosshairOpacity*f.Opacity))
	arm := int(math.Round(f.CrosshairScale * 12))
	rows = append(rows,
		cross.Render("│"),
		cross.Render(strings.Repeat("─", arm)+"┼"+strings.Repeat("─", arm)),
		cross.Render("│"),
		"",
	)

	// emblem
	emblem := lipgloss.NewStyle().Foreground(fade(colorAccent, f.EmblemOpacity*f.Opacity))
	rows = append(rows, emblem.Render(emblemGlyph(f.EmblemRotation)), "")

	// title card
	reveal := revealText(bootTitle, f.TitleReveal)
	title := bootTitleStyle.Foreground(fade(colorText, f.TitleOpacity*f.Opacity)).Render(padRight(reveal, len(bootTitle)))
	sub := lipgloss.NewStyle().Foreground(fade(colorTextDim, f.TitleOpacity*f.Opacity)).Render(bootSubtitle)
	card := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(fade(colorBorder, f.FrameOpacity*f.Opacity)).
		Padding(0, 3).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, title, sub))
	rows = append(rows, card, "")

	// progress
	rows = append(rows, lipgloss.NewStyle().
		Foreground(fade(colorTextMute, f.Opacity)).
		Render(progressBar(f.Progress, 24)))

	content := lipgloss.JoinVertical(lipgloss.Center, rows...)
	placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)

	// scanline sweeps over blank rows only
	lines := strings.Split(placed, "\n")
	if len(lines) > 0 {
		y := int(f.ScanlineY * float64(len(lines)-1))
		if strings.TrimSpace(lines[y]) == "" {
			scan := lipgloss.NewStyle().Foreground(fade(colorPrimary, 0.35*f.Opacity))
			lines[y] = scan.Render(strings.Repeat("─", width))
		}
	}
	return strings.Join(lines, "\n")
}

// emblemGlyph draws the emblem turned by rotation degrees, in 45° steps
func emblemGlyph(rotation float64) string {
	spokes := []string{"│", "╱", "─", "╲"}
	step := int(math.Round(rotation/45)) % len(spokes)
	if step < 0 {
		step += len(spokes)
	}
	s := spokes[step]
	return fmt.Sprintf("◢%s◣ H O S ◢%s◣", s, s)
}

// revealText returns the first fraction of text
func revealText(text string, fraction float64) string {
	runes := []rune(text)
	n := int(math.Round(fraction * float64(len(runes))))
	if n < 0 {
		n = 0
	}
	if n > len(runes) {
		n = len(runes)
	}
	return string(runes[:n])
}

func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// progressBar renders p in [0,1] as a bar of width cells and a percentage
func progressBar(p float64, width int) string {
	filled := int(math.Round(p * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return fmt.Sprintf("booting %s%s %3d%%", strings.Repeat("▰", filled), strings.Repeat("▱", width-filled), int(math.Round(p*100)))
}
