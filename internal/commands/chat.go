package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hosbabel/hosbabel/internal/render"
	"github.com/hosbabel/hosbabel/internal/tui"
)

// NewChatCmd creates the chat command
func NewChatCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the chat screen",
		Long: `Start the chat screen.

Each message is posted to the backend's chat endpoints in order until one
answers. Enter sends, Alt+Enter inserts a newline, Ctrl+O and Ctrl+G open
the project links, Esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(deps)
		},
	}
}

func runChat(deps *Dependencies) error {
	client, release, err := deps.client()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer release()

	return deps.TUI.RunChat(client, chatOptions(deps))
}

// chatOptions maps the resolved config onto the chat screen
func chatOptions(deps *Dependencies) tui.ChatOptions {
	opts := tui.DefaultChatOptions()
	if deps.Opener != nil {
		opts.Opener = deps.Opener
	}
	opts.CopyToClipboard = deps.Config.CopyToClipboard
	opts.Render = render.OptionsFromConfig(deps.Config, 0)
	return opts
}
