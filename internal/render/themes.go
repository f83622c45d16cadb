package render

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// Markdown style names
const (
	ThemeBabel = "babel"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// IsBuiltinStyle returns true if the style is handled without reading a file
// (our babel style or a glamour standard style).
func IsBuiltinStyle(style string) bool {
	if style == ThemeBabel {
		return true
	}
	_, ok := styles.DefaultStyles[style]
	return ok
}

// styleOption maps a style name to its glamour option. Names that are neither
// babel nor a standard style are read as JSON style files.
func styleOption(style string) glamour.TermRendererOption {
	switch {
	case style == ThemeBabel || style == "":
		return glamour.WithStyles(BabelStyleConfig())
	case IsBuiltinStyle(style):
		return glamour.WithStandardStyle(style)
	default:
		return glamour.WithStylePath(style)
	}
}

// BabelStyleConfig derives the glamour style used for assistant replies from
// glamour's dark style, recoloured to the HOS_BABEL palette.
func BabelStyleConfig() ansi.StyleConfig {
	cfg := styles.DarkStyleConfig

	cfg.Document.Color = strPtr(string(BabelTheme.Text))
	cfg.Document.Margin = uintPtr(0)
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""

	cfg.Heading.Color = strPtr(string(BabelTheme.Primary))
	cfg.H1.Color = strPtr(string(BabelTheme.Background))
	cfg.H1.BackgroundColor = strPtr(string(BabelTheme.Primary))

	cfg.BlockQuote.Color = strPtr(string(BabelTheme.TextDim))
	cfg.Link.Color = strPtr(string(BabelTheme.Primary))
	cfg.LinkText.Color = strPtr(string(BabelTheme.Primary))
	cfg.Code.Color = strPtr(string(BabelTheme.Warning))
	cfg.Code.BackgroundColor = strPtr(string(BabelTheme.Surface))
	cfg.HorizontalRule.Color = strPtr(string(BabelTheme.Border))

	return cfg
}

// ThemeInfo contains information about a theme for display purposes.
type ThemeInfo struct {
	Name        string
	Description string
}

// AvailableThemes returns the markdown styles offered by `config set markdown.style`.
func AvailableThemes() []ThemeInfo {
	return []ThemeInfo{
		{Name: ThemeBabel, Description: "HOS_BABEL palette (default)"},
		{Name: ThemeDark, Description: "Glamour dark"},
		{Name: ThemeLight, Description: "Light theme for bright terminals"},
		{Name: "dracula", Description: "Dracula color scheme"},
		{Name: "tokyo-night", Description: "Tokyo Night color scheme"},
		{Name: "notty", Description: "Plain text (no styling)"},
		{Name: "ascii", Description: "ASCII-only output"},
	}
}

// ThemeNames returns just the theme names for selection.
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }
