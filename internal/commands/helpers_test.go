package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/hosbabel/hosbabel/internal/api"
	"github.com/hosbabel/hosbabel/internal/config"
	"github.com/hosbabel/hosbabel/internal/tui"
)

// mockTUI records which screen was started and with what
type mockTUI struct {
	chatClient  api.ReplyClient
	chatOpts    *tui.ChatOptions
	startupOpts *tui.StartupOptions
	consoleOpts *tui.ConsoleOptions
	configOpts  *tui.ConfigOptions
	err         error
}

func (m *mockTUI) RunChat(client api.ReplyClient, opts tui.ChatOptions) error {
	m.chatClient = client
	m.chatOpts = &opts
	return m.err
}

func (m *mockTUI) RunStartup(opts tui.StartupOptions) error {
	m.startupOpts = &opts
	return m.err
}

func (m *mockTUI) RunConsole(opts tui.ConsoleOptions) error {
	m.consoleOpts = &opts
	return m.err
}

func (m *mockTUI) RunConfig(opts tui.ConfigOptions) error {
	m.configOpts = &opts
	return m.err
}

type mockOpener struct {
	urls []string
	err  error
}

func (m *mockOpener) Open(_ context.Context, rawURL string) error {
	m.urls = append(m.urls, rawURL)
	return m.err
}

// newTestDeps wires deps to a mock client, TUI and opener
func newTestDeps(client *api.MockClient) (*Dependencies, *mockTUI, *mockOpener) {
	ui := &mockTUI{}
	opener := &mockOpener{}
	cfg := config.DefaultConfig()
	cfg.APIBase = client.Base
	return &Dependencies{
		Config: cfg,
		NewClient: func(string) (api.ReplyClient, error) {
			return client, nil
		},
		TUI:    ui,
		Opener: opener,
	}, ui, opener
}

// execute runs cmd with args and returns stdout and stderr
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
