package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the TUI interface
type TUITheme struct {
	Name        string
	Description string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// Built-in TUI themes
var (
	// BabelTheme is the default: deep navy cards with a cold blue accent
	BabelTheme = TUITheme{
		Name:        "babel",
		Description: "HOS_BABEL - navy terminal with blue accents",

		Background: lipgloss.Color("#0b0f16"),
		Surface:    lipgloss.Color("#121a27"),
		Border:     lipgloss.Color("#22304a"),

		Primary:   lipgloss.Color("#7aa2ff"),
		Secondary: lipgloss.Color("#7fe0a8"),
		Accent:    lipgloss.Color("#c3a6ff"),
		Warning:   lipgloss.Color("#ffcc66"),
		Error:     lipgloss.Color("#ff6b81"),

		Text:     lipgloss.Color("#e6ecff"),
		TextDim:  lipgloss.Color("#a8b3cf"),
		TextMute: lipgloss.Color("#4a5878"),
	}

	// TokyoNightTheme is based on the Tokyo Night color scheme
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	// PhosphorTheme mimics a green monochrome CRT
	PhosphorTheme = TUITheme{
		Name:        "phosphor",
		Description: "Phosphor - green monochrome CRT",

		Background: lipgloss.Color("#020a04"),
		Surface:    lipgloss.Color("#08180c"),
		Border:     lipgloss.Color("#1f5f2f"),

		Primary:   lipgloss.Color("#33ff66"),
		Secondary: lipgloss.Color("#22cc55"),
		Accent:    lipgloss.Color("#99ffbb"),
		Warning:   lipgloss.Color("#ccff33"),
		Error:     lipgloss.Color("#ff5533"),

		Text:     lipgloss.Color("#b8ffcc"),
		TextDim:  lipgloss.Color("#4fa368"),
		TextMute: lipgloss.Color("#245c33"),
	}
)

var (
	themeMu         sync.RWMutex
	currentTUITheme = BabelTheme
)

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTUITheme
}

// SetTUITheme sets the active TUI theme by name
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTUITheme = theme
	themeMu.Unlock()
	return true
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, t := range AvailableTUIThemes() {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// AvailableTUIThemes returns a list of all available TUI themes
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{
		BabelTheme,
		TokyoNightTheme,
		PhosphorTheme,
	}
}

// TUIThemeNames returns just the theme names for selection
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
