package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hosbabel/hosbabel/internal/api"
	"github.com/hosbabel/hosbabel/internal/browser"
	apierrors "github.com/hosbabel/hosbabel/internal/errors"
	"github.com/hosbabel/hosbabel/internal/logger"
	"github.com/hosbabel/hosbabel/internal/models"
	"github.com/hosbabel/hosbabel/internal/render"
)

// Header and banner texts
const (
	headerOffline     = "Offline mode"
	headerConnected   = "API connected"
	headerUnreachable = "API unreachable"
	headerChecking    = "Checking API…"
	unreachableBanner = "API looks unreachable. Check HOS_BABEL_API_BASE or backend container."
	thinkingText      = "Thinking…"
	timeLayout        = "15:04:05"
)

// Message types for the chat screen
type (
	healthMsg struct {
		status api.HealthStatus
		err    error
	}
	replyMsg struct {
		text string
		err  error
	}
	linkResultMsg struct {
		url string
		err error
	}
	clipboardMsg struct {
		err error
	}
)

// LinkOpener opens a URL in the platform handler
type LinkOpener interface {
	Open(ctx context.Context, rawURL string) error
}

// ChatOptions configures the chat screen
type ChatOptions struct {
	// Opener handles the Open Web and Repo links. Defaults to browser.NewOpener().
	Opener LinkOpener
	// CopyToClipboard enables the copy-last-reply binding
	CopyToClipboard bool
	// Clipboard writes text to the system clipboard. Defaults to clipboard.WriteAll.
	Clipboard func(string) error
	// Render configures assistant Markdown
	Render render.Options
	// Now returns the timestamp for new messages
	Now func() time.Time
}

// DefaultChatOptions returns options wired to the real clipboard and browser
func DefaultChatOptions() ChatOptions {
	return ChatOptions{
		Opener:          browser.NewOpener(),
		CopyToClipboard: true,
		Clipboard:       clipboard.WriteAll,
		Render:          render.DefaultOptions(),
		Now:             time.Now,
	}
}

// ChatModel is the chat screen
type ChatModel struct {
	client api.ReplyClient
	ctx    context.Context
	cancel context.CancelFunc
	opts   ChatOptions
	keys   chatKeyMap
	log    *logger.Entry

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	messages *models.Buffer[models.Message]
	busy     bool
	health   api.HealthStatus
	notice   string
	ready    bool

	// Dimensions
	width  int
	height int
}

// NewChatModel creates the chat screen for client
func NewChatModel(client api.ReplyClient, opts ChatOptions) ChatModel {
	defaults := DefaultChatOptions()
	if opts.Opener == nil {
		opts.Opener = defaults.Opener
	}
	if opts.Clipboard == nil {
		opts.Clipboard = defaults.Clipboard
	}
	if opts.Now == nil {
		opts.Now = defaults.Now
	}
	if opts.Render.Width == 0 {
		opts.Render = defaults.Render
	}

	ta := textarea.New()
	ta.Placeholder = "Type a message…"
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	ctx, cancel := context.WithCancel(context.Background())

	m := ChatModel{
		client:   client,
		ctx:      ctx,
		cancel:   cancel,
		opts:     opts,
		keys:     defaultChatKeys(),
		log:      logger.Named("chat"),
		textarea: ta,
		spinner:  s,
		messages: models.NewBuffer[models.Message](models.MaxChatMessages),
	}
	m.appendMessage(models.RoleSystem, greetingText(client.BaseURL()))
	return m
}

// greetingText is the first system message of a chat
func greetingText(base string) string {
	if base == "" {
		return "HOS_BABEL is ready.\nAPI base is empty. Set HOS_BABEL_API_BASE to enable server replies."
	}
	return "HOS_BABEL is ready.\nAPI base detected: " + base
}

// Init starts the health probe
func (m ChatModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if !m.client.Offline() {
		cmds = append(cmds, m.checkHealth())
	}
	return tea.Batch(cmds...)
}

// Messages returns the chat log, oldest first
func (m ChatModel) Messages() []models.Message {
	return m.messages.Items()
}

// Busy reports whether a reply is pending
func (m ChatModel) Busy() bool {
	return m.busy
}

// HeaderStatus returns the connectivity text shown in the header
func (m ChatModel) HeaderStatus() string {
	switch {
	case m.client.Offline():
		return headerOffline
	case m.health == api.StatusOK:
		return headerConnected
	case m.health == api.StatusError:
		return headerUnreachable
	default:
		return headerChecking
	}
}

// Update handles messages and updates the model
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancel()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Send):
			return m.submit()

		case key.Matches(msg, m.keys.Copy):
			return m, m.copyLastReply()

		case key.Matches(msg, m.keys.OpenWeb):
			return m, m.openLink(models.RepoPageURL)

		case key.Matches(msg, m.keys.OpenRepo):
			return m, m.openLink(models.RepoURL)
		}

	case healthMsg:
		if errors.Is(msg.err, context.Canceled) {
			return m, nil
		}
		m.health = msg.status
		if msg.err != nil {
			m.log.WithField("error", msg.err).Debug("health probe reported an error")
		}
		m.resize(m.width, m.height)

	case replyMsg:
		if errors.Is(msg.err, context.Canceled) {
			return m, nil
		}
		m.busy = false
		m.appendMessage(models.RoleAssistant, replyText(msg))
		m.textarea.Focus()
		m.refresh()
		m.viewport.GotoBottom()

	case linkResultMsg:
		if msg.err != nil {
			m.log.WithField("url", msg.url).WithField("error", msg.err).Warn("link open failed")
			m.appendMessage(models.RoleAssistant, "Couldn't open: "+msg.url)
			m.refresh()
			m.viewport.GotoBottom()
		}

	case clipboardMsg:
		if msg.err != nil {
			m.notice = "Copy failed: " + msg.err.Error()
		} else {
			m.notice = "Copied last reply"
		}

	case spinner.TickMsg:
		if m.busy {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
			m.refresh()
		}
	}

	if _, ok := msg.(tea.KeyMsg); ok {
		m.notice = ""
		if !m.busy {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// replyText maps a fetch outcome to the assistant message
func replyText(msg replyMsg) string {
	switch {
	case msg.err == nil:
		return msg.text
	case apierrors.IsOffline(msg.err):
		return models.OfflineReply
	default:
		return models.NoReplyText
	}
}

// submit sends the current draft. Empty drafts and sends while busy are ignored.
func (m ChatModel) submit() (ChatModel, tea.Cmd) {
	text := strings.TrimSpace(m.textarea.Value())
	if text == "" || m.busy {
		return m, nil
	}

	m.appendMessage(models.RoleUser, text)
	m.textarea.Reset()
	m.busy = true
	m.notice = ""
	m.refresh()
	m.viewport.GotoBottom()

	return m, tea.Batch(m.fetchReply(text), m.spinner.Tick)
}

func (m ChatModel) fetchReply(text string) tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		reply, err := client.FetchReply(ctx, text)
		return replyMsg{text: reply, err: err}
	}
}

func (m ChatModel) checkHealth() tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		status, err := client.CheckHealth(ctx)
		return healthMsg{status: status, err: err}
	}
}

func (m ChatModel) openLink(url string) tea.Cmd {
	opener, ctx := m.opts.Opener, m.ctx
	return func() tea.Msg {
		return linkResultMsg{url: url, err: opener.Open(ctx, url)}
	}
}

func (m ChatModel) copyLastReply() tea.Cmd {
	if !m.opts.CopyToClipboard {
		return nil
	}
	items := m.messages.Items()
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Role == models.RoleAssistant {
			text, write := items[i].Text, m.opts.Clipboard
			return func() tea.Msg {
				return clipboardMsg{err: write(text)}
			}
		}
	}
	return func() tea.Msg {
		return clipboardMsg{err: errors.New("no reply yet")}
	}
}

func (m *ChatModel) appendMessage(role models.Role, text string) {
	msg := models.NewMessage(role, text)
	msg.Timestamp = m.opts.Now()
	m.messages.Append(msg)
}

// resize lays out the screen for the given terminal size
func (m *ChatModel) resize(width, height int) {
	if width == 0 || height == 0 {
		return
	}
	m.width = width
	m.height = height

	headerHeight := 3
	if m.health == api.StatusError {
		headerHeight += 3
	}
	inputHeight := 5
	statusHeight := 1
	vpHeight := m.height - headerHeight - inputHeight - statusHeight - 2
	if vpHeight < 5 {
		vpHeight = 5
	}
	contentWidth := m.width - 4

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.viewport.KeyMap = chatViewportKeys()
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 4)
	m.refresh()
}

// refresh re-renders the chat log into the viewport
func (m *ChatModel) refresh() {
	if !m.ready {
		return
	}
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	for i, msg := range m.messages.Items() {
		if i > 0 {
			content.WriteString("\n")
		}
		meta := metaStyle.Render(fmt.Sprintf("%s · %s", strings.ToUpper(string(msg.Role)), msg.Timestamp.Format(timeLayout)))

		switch msg.Role {
		case models.RoleUser:
			content.WriteString(lipgloss.NewStyle().MarginLeft(4).Render(meta) + "\n")
			content.WriteString(userBubbleStyle.Width(bubbleWidth).Render(msg.Text))
		case models.RoleAssistant:
			rendered, err := render.Markdown(msg.Text, m.opts.Render.WithWidth(bubbleWidth-4))
			if err != nil {
				rendered = msg.Text
			}
			rendered = strings.TrimRight(rendered, "\n")
			content.WriteString(meta + "\n")
			content.WriteString(assistantBubbleStyle.Width(bubbleWidth).Render(rendered))
		default:
			content.WriteString(lipgloss.NewStyle().MarginLeft(2).Render(meta) + "\n")
			content.WriteString(systemBubbleStyle.Width(bubbleWidth - 4).Render(msg.Text))
		}
		content.WriteString("\n")
	}

	if m.busy {
		content.WriteString("\n" + m.spinner.View() + " " + loadingStyle.Render(thinkingText) + "\n")
	}

	m.viewport.SetContent(content.String())
}

// View renders the chat screen
func (m ChatModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	var status string
	switch m.HeaderStatus() {
	case headerConnected:
		status = statusOkStyle.Render("● " + headerConnected)
	case headerUnreachable:
		status = statusErrorStyle.Render("● " + headerUnreachable)
	default:
		status = statusUnknownStyle.Render("○ " + m.HeaderStatus())
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("HOS_BABEL"),
		hintStyle.Render("  •  "),
		status,
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	if m.health == api.StatusError {
		sections = append(sections, bannerStyle.Width(contentWidth).Render(unreachableBanner))
	}

	// Messages
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(m.viewport.View()))

	// Input
	inputContent := lipgloss.JoinVertical(
		lipgloss.Left,
		inputLabelStyle.Render("You"),
		m.textarea.View(),
	)
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	// Status bar
	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m ChatModel) renderStatusBar(width int) string {
	if m.notice != "" {
		return statusBarStyle.Width(width).Align(lipgloss.Center).Render(m.notice)
	}

	var items []string
	for _, b := range m.keys.shortHelp() {
		if !m.opts.CopyToClipboard && b.Help().Key == m.keys.Copy.Help().Key {
			continue
		}
		items = append(items, lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(b.Help().Key),
			statusDescStyle.Render(" "+b.Help().Desc),
		))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// RunChat starts the chat screen and blocks until it exits
func RunChat(client api.ReplyClient, opts ChatOptions) error {
	m := NewChatModel(client, opts)
	defer m.cancel()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
