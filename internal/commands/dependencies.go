package commands

import (
	"io"

	"github.com/hosbabel/hosbabel/internal/api"
	"github.com/hosbabel/hosbabel/internal/browser"
	"github.com/hosbabel/hosbabel/internal/config"
	"github.com/hosbabel/hosbabel/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(client api.ReplyClient, opts tui.ChatOptions) error
	RunStartup(opts tui.StartupOptions) error
	RunConsole(opts tui.ConsoleOptions) error
	RunConfig(opts tui.ConfigOptions) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Config is the resolved configuration (file, env and flags applied).
	Config config.Config

	// NewClient builds the backend client for a base URL.
	NewClient func(baseURL string) (api.ReplyClient, error)

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Opener handles project links.
	Opener tui.LinkOpener

	logCloser io.Closer
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(client api.ReplyClient, opts tui.ChatOptions) error {
	return tui.RunChat(client, opts)
}

func (d *DefaultTUI) RunStartup(opts tui.StartupOptions) error {
	return tui.RunStartup(opts)
}

func (d *DefaultTUI) RunConsole(opts tui.ConsoleOptions) error {
	return tui.RunConsole(opts)
}

func (d *DefaultTUI) RunConfig(opts tui.ConfigOptions) error {
	return tui.RunConfig(opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		Config: config.DefaultConfig(),
		NewClient: func(baseURL string) (api.ReplyClient, error) {
			c, err := api.NewClient(baseURL)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		TUI:    &DefaultTUI{},
		Opener: browser.NewOpener(),
	}
}

// client builds a client for the resolved base URL. The returned func
// releases its transport.
func (d *Dependencies) client() (api.ReplyClient, func(), error) {
	c, err := d.NewClient(d.Config.APIBase)
	if err != nil {
		return nil, nil, err
	}
	release := func() {}
	if closer, ok := c.(interface{ Close() }); ok {
		release = closer.Close
	}
	return c, release, nil
}

// Close flushes the log sink
func (d *Dependencies) Close() {
	if d.logCloser != nil {
		_ = d.logCloser.Close()
		d.logCloser = nil
	}
}
