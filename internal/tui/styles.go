// Package tui provides the terminal screens for hosbabel: chat, boot
// animation and the fake-login console.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/hosbabel/hosbabel/internal/errors"
	"github.com/hosbabel/hosbabel/internal/render"
)

// Color variables (updated from theme)
var (
	// Base colors
	colorBackground lipgloss.Color
	colorSurface    lipgloss.Color
	colorBorder     lipgloss.Color

	// Accent colors
	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color

	// Text colors
	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	// Header panel style
	headerStyle lipgloss.Style

	// Title style for header
	titleStyle lipgloss.Style

	// Subtitle style
	subtitleStyle lipgloss.Style

	// Hint text style
	hintStyle lipgloss.Style

	// Health pill styles
	statusOkStyle      lipgloss.Style
	statusErrorStyle   lipgloss.Style
	statusUnknownStyle lipgloss.Style

	// Warning banner under the header
	bannerStyle lipgloss.Style

	// Messages area panel
	messagesAreaStyle lipgloss.Style

	// Message bubbles and their role/time meta line
	userBubbleStyle      lipgloss.Style
	assistantBubbleStyle lipgloss.Style
	systemBubbleStyle    lipgloss.Style
	metaStyle            lipgloss.Style

	// Input area panel
	inputPanelStyle lipgloss.Style

	// Input label style
	inputLabelStyle lipgloss.Style

	// Loading/spinner style
	loadingStyle lipgloss.Style

	// Status bar styles
	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style

	// Error style
	errorStyle lipgloss.Style

	// Console styles
	consolePanelStyle  lipgloss.Style
	consoleLineStyle   lipgloss.Style
	consoleBabelStyle  lipgloss.Style
	consolePromptStyle lipgloss.Style

	// Boot styles
	bootTitleStyle lipgloss.Style

	// Settings screen styles
	configPanelStyle    lipgloss.Style
	configSectionStyle  lipgloss.Style
	configItemStyle     lipgloss.Style
	configSelectedStyle lipgloss.Style
	configCursorStyle   lipgloss.Style
	configValueStyle    lipgloss.Style
	configEnabledStyle  lipgloss.Style
	configDisabledStyle lipgloss.Style
	configFeedbackStyle lipgloss.Style
)

// init loads the default theme on package initialization
func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorBackground = theme.Background
	colorSurface = theme.Surface
	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorWarning = theme.Warning
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

// rebuildStyles creates all lipgloss styles with current color values
func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	statusOkStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true)

	statusErrorStyle = lipgloss.NewStyle().
		Foreground(colorWarning).
		Bold(true)

	statusUnknownStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	bannerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorWarning).
		Foreground(colorWarning).
		Padding(0, 1)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	userBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Foreground(colorText).
		Padding(0, 1).
		MarginLeft(4)

	assistantBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Foreground(colorText).
		Padding(0, 1).
		MarginRight(4)

	systemBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorTextMute).
		Foreground(colorTextDim).
		Padding(0, 1).
		MarginLeft(2).
		MarginRight(2)

	metaStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		MarginRight(1)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	consolePanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	consoleLineStyle = lipgloss.NewStyle().
		Foreground(colorText)

	consoleBabelStyle = lipgloss.NewStyle().
		Foreground(colorWarning).
		Bold(true)

	consolePromptStyle = lipgloss.NewStyle().
		Foreground(colorPrimary)

	bootTitleStyle = lipgloss.NewStyle().
		Bold(true)

	configPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	configSectionStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	configItemStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	configSelectedStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	configCursorStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	configValueStyle = lipgloss.NewStyle().
		Foreground(colorPrimary)

	configEnabledStyle = lipgloss.NewStyle().
		Foreground(colorSecondary)

	configDisabledStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	configFeedbackStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Italic(true)
}

// fade blends from the background toward c by opacity in [0,1].
// Terminals have no alpha, so opacity is approximated by colour.
func fade(c lipgloss.Color, opacity float64) lipgloss.Color {
	if opacity >= 1 {
		return c
	}
	if opacity < 0 {
		opacity = 0
	}
	bg, err := colorful.Hex(string(colorBackground))
	if err != nil {
		return c
	}
	fg, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	return lipgloss.Color(bg.BlendLab(fg, opacity).Clamped().Hex())
}

// FormatError returns a styled error message with additional context
// extracted from the typed errors in internal/errors.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	switch {
	case errors.IsOffline(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Set HOS_BABEL_API_BASE or pass --api-base"))
	case errors.IsTimeoutError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The backend did not answer in time"))
	case errors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check that the backend container is running"))
	}

	return sb.String()
}

// PrintError prints a styled error message.
func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Println(FormatError(err))
}
