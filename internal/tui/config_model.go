package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hosbabel/hosbabel/internal/config"
	"github.com/hosbabel/hosbabel/internal/render"
)

// configView represents the current view in the config menu
type configView int

const (
	viewMain configView = iota
	viewThemeSelect    // Markdown theme
	viewTUIThemeSelect // TUI color theme
)

// Menu item indices for main view
const (
	menuSkipBoot = iota
	menuVerbose
	menuCopyToClipboard
	menuBabelColumns
	menuTheme    // Markdown theme
	menuTUITheme // TUI color theme
	menuExit
	menuItemCount
)

// babelColumnChoices are the wrap widths offered by the menu
var babelColumnChoices = []int{32, 40, 48, 64, 80}

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// ConfigOptions configures the settings screen
type ConfigOptions struct {
	// Config is the file configuration being edited
	Config config.Config
	// APIBase is the effective backend root, shown read-only
	APIBase string
	// Save persists the configuration. Defaults to config.SaveConfig.
	Save func(config.Config) error
}

// ConfigModel represents the config TUI state
type ConfigModel struct {
	config     config.Config
	apiBase    string
	configPath string
	save       func(config.Config) error

	// Navigation
	view           configView
	cursor         int
	themeCursor    int // Markdown theme cursor
	tuiThemeCursor int // TUI theme cursor

	// Feedback
	feedback        string
	feedbackErr     bool
	feedbackTimeout time.Duration

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewConfigModel creates a new config TUI model
func NewConfigModel(opts ConfigOptions) ConfigModel {
	if opts.Save == nil {
		opts.Save = config.SaveConfig
	}
	configPath, _ := config.GetConfigPath()

	return ConfigModel{
		config:          opts.Config,
		apiBase:         opts.APIBase,
		configPath:      configPath,
		save:            opts.Save,
		view:            viewMain,
		themeCursor:     indexOf(render.ThemeNames(), markdownStyle(opts.Config)),
		tuiThemeCursor:  indexOf(render.TUIThemeNames(), tuiThemeName(opts.Config)),
		feedbackTimeout: 2 * time.Second,
	}
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return 0
}

func markdownStyle(cfg config.Config) string {
	if cfg.Markdown.Style == "" {
		return render.ThemeBabel
	}
	return cfg.Markdown.Style
}

func tuiThemeName(cfg config.Config) string {
	if cfg.TUITheme == "" {
		return render.BabelTheme.Name
	}
	return cfg.TUITheme
}

// Config returns the configuration as edited so far
func (m ConfigModel) Config() config.Config {
	return m.config
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""
		m.feedbackErr = false

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.view != viewMain {
				m.view = viewMain
			} else {
				return m, tea.Quit
			}

		case "up", "k":
			m.moveCursor(-1)

		case "down", "j":
			m.moveCursor(1)

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

// moveCursor moves the cursor of the active view, wrapping at both ends
func (m *ConfigModel) moveCursor(delta int) {
	wrap := func(v, n int) int {
		return ((v+delta)%n + n) % n
	}
	switch m.view {
	case viewMain:
		m.cursor = wrap(m.cursor, menuItemCount)
	case viewThemeSelect:
		m.themeCursor = wrap(m.themeCursor, len(render.ThemeNames()))
	case viewTUIThemeSelect:
		m.tuiThemeCursor = wrap(m.tuiThemeCursor, len(render.TUIThemeNames()))
	}
}

// handleSelect handles menu item selection
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewThemeSelect:
		m.config.Markdown.Style = render.ThemeNames()[m.themeCursor]
		m.view = viewMain
		return m.persist(fmt.Sprintf("Markdown theme set to %s", m.config.Markdown.Style))

	case viewTUIThemeSelect:
		selected := render.TUIThemeNames()[m.tuiThemeCursor]
		m.config.TUITheme = selected

		// Apply the new TUI theme immediately
		render.SetTUITheme(selected)
		UpdateTheme()

		m.view = viewMain
		return m.persist(fmt.Sprintf("TUI theme set to %s", selected))
	}

	switch m.cursor {
	case menuSkipBoot:
		m.config.SkipBoot = !m.config.SkipBoot
		return m.persist("Skip boot " + enabledWord(m.config.SkipBoot))

	case menuVerbose:
		m.config.Verbose = !m.config.Verbose
		return m.persist("Verbose logging " + enabledWord(m.config.Verbose))

	case menuCopyToClipboard:
		m.config.CopyToClipboard = !m.config.CopyToClipboard
		return m.persist("Copy to clipboard " + enabledWord(m.config.CopyToClipboard))

	case menuBabelColumns:
		m.config.BabelColumns = nextColumns(m.config.BabelColumns)
		return m.persist(fmt.Sprintf("Babel columns set to %d", m.config.BabelColumns))

	case menuTheme:
		m.view = viewThemeSelect

	case menuTUITheme:
		m.view = viewTUIThemeSelect

	case menuExit:
		return m, tea.Quit
	}

	return m, nil
}

// persist saves the config and reports the outcome
func (m ConfigModel) persist(success string) (tea.Model, tea.Cmd) {
	if err := m.save(m.config); err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
		m.feedbackErr = true
	} else {
		m.feedback = success
		m.feedbackErr = false
	}
	return m, clearFeedback(m.feedbackTimeout)
}

// nextColumns returns the first choice wider than current, wrapping around
func nextColumns(current int) int {
	for _, c := range babelColumnChoices {
		if c > current {
			return c
		}
	}
	return babelColumnChoices[0]
}

func enabledWord(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}

// View renders the TUI
func (m ConfigModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	header := headerStyle.Width(contentWidth).Render(titleStyle.Render("✦ Configuration"))
	sections = append(sections, header)

	apiBase := m.apiBase
	if apiBase == "" {
		apiBase = "(offline)"
	}
	pathsContent := lipgloss.JoinVertical(lipgloss.Left,
		configSectionStyle.Render("Paths"),
		fmt.Sprintf("   Config:   %s", configValueStyle.Render(m.configPath)),
		fmt.Sprintf("   API base: %s", configValueStyle.Render(apiBase)),
	)
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(pathsContent))

	var settings string
	switch m.view {
	case viewThemeSelect:
		settings = m.renderThemeSelect()
	case viewTUIThemeSelect:
		settings = m.renderTUIThemeSelect()
	default:
		settings = m.renderMainMenu()
	}
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(settings))

	if m.feedback != "" {
		if m.feedbackErr {
			sections = append(sections, errorStyle.Render("✗ "+m.feedback))
		} else {
			sections = append(sections, configFeedbackStyle.Render("✓ "+m.feedback))
		}
	}

	sections = append(sections, m.renderStatusBar(contentWidth))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// menuLine renders one selectable row
func menuLine(selected bool, label, value string) string {
	cursor := "  "
	style := configItemStyle
	if selected {
		cursor = configCursorStyle.Render("▸ ")
		style = configSelectedStyle
	}
	if value == "" {
		return cursor + style.Render(label)
	}
	const labelWidth = 20
	pad := labelWidth - lipgloss.Width(label)
	if pad < 1 {
		pad = 1
	}
	return cursor + style.Render(label) + strings.Repeat(" ", pad) + value
}

func boolValue(v bool) string {
	if v {
		return configEnabledStyle.Render("enabled")
	}
	return configDisabledStyle.Render("disabled")
}

// renderMainMenu renders the main settings menu
func (m ConfigModel) renderMainMenu() string {
	rows := []struct {
		label string
		value string
	}{
		menuSkipBoot:        {"Skip Boot", boolValue(m.config.SkipBoot)},
		menuVerbose:         {"Verbose Logging", boolValue(m.config.Verbose)},
		menuCopyToClipboard: {"Copy to Clipboard", boolValue(m.config.CopyToClipboard)},
		menuBabelColumns:    {"Babel Columns", configValueStyle.Render(fmt.Sprintf("%d", m.config.BabelColumns))},
		menuTheme:           {"Markdown Theme", configValueStyle.Render(markdownStyle(m.config))},
		menuTUITheme:        {"TUI Theme", configValueStyle.Render(tuiThemeName(m.config))},
		menuExit:            {"Exit", ""},
	}

	lines := []string{configSectionStyle.Render("Settings"), ""}
	for i, r := range rows {
		if i == menuExit {
			lines = append(lines, "")
		}
		lines = append(lines, menuLine(m.cursor == i, r.label, r.value))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderThemeSelect renders the markdown theme selection sub-menu
func (m ConfigModel) renderThemeSelect() string {
	lines := []string{configSectionStyle.Render("Select Markdown Theme"), ""}
	current := markdownStyle(m.config)
	for i, theme := range render.AvailableThemes() {
		line := menuLine(m.themeCursor == i, fmt.Sprintf("%s - %s", theme.Name, theme.Description), "")
		if theme.Name == current {
			line += statusOkStyle.Render(" (current)")
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderTUIThemeSelect renders the TUI color theme selection sub-menu
func (m ConfigModel) renderTUIThemeSelect() string {
	lines := []string{configSectionStyle.Render("Select TUI Theme"), ""}
	current := tuiThemeName(m.config)
	for i, theme := range render.AvailableTUIThemes() {
		line := menuLine(m.tuiThemeCursor == i, fmt.Sprintf("%s - %s", theme.Name, theme.Description), "")
		if theme.Name == current {
			line += statusOkStyle.Render(" (current)")
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderStatusBar renders the bottom status bar
func (m ConfigModel) renderStatusBar(width int) string {
	escDesc := "Exit"
	if m.view != viewMain {
		escDesc = "Back"
	}
	shortcuts := [][2]string{{"↑↓", "Navigate"}, {"Enter", "Select"}, {"Esc", escDesc}}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s[0])+statusDescStyle.Render(" "+s[1]))
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// RunConfig starts the config TUI
func RunConfig(opts ConfigOptions) error {
	p := tea.NewProgram(
		NewConfigModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
