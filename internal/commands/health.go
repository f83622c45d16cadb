package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hosbabel/hosbabel/internal/api"
)

var (
	healthOkColor      = color.New(color.FgGreen, color.Bold)
	healthErrorColor   = color.New(color.FgRed, color.Bold)
	healthUnknownColor = color.New(color.FgYellow)
	healthDimColor     = color.New(color.Faint)
)

// NewHealthCmd creates the health command
func NewHealthCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the backend health endpoint",
		Long: `Send one GET to <base>/health, bounded at 2.5 seconds.

Any HTTP answer counts as connected. Exits with status 1 when the backend
is unreachable. In offline mode no request is made.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealth(cmd.Context(), deps, cmd.OutOrStdout())
		},
	}
}

func runHealth(ctx context.Context, deps *Dependencies, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	client, release, err := deps.client()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer release()

	status, err := client.CheckHealth(ctx)
	switch status {
	case api.StatusOK:
		fmt.Fprintf(out, "%s %s\n", healthOkColor.Sprint("● API connected"), healthDimColor.Sprint(client.BaseURL()))
		return nil
	case api.StatusError:
		fmt.Fprintf(out, "%s %s\n", healthErrorColor.Sprint("● API unreachable"), healthDimColor.Sprint(client.BaseURL()))
		return fmt.Errorf("health check failed: %w", err)
	default:
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", healthUnknownColor.Sprint("○ Offline mode"), healthDimColor.Sprint("no API base configured"))
		return nil
	}
}
