package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hosbabel/hosbabel/internal/browser"
)

// NewOpenCmd creates the open command for the project links
func NewOpenCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:       "open <web|repo>",
		Short:     "Open the project page or repository",
		ValidArgs: []string{string(browser.LinkWeb), string(browser.LinkRepo)},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := browser.ParseLink(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			url := link.URL()
			if err := deps.Opener.Open(ctx, url); err != nil {
				return fmt.Errorf("couldn't open %s: %w", url, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", url)
			return nil
		},
	}
}
