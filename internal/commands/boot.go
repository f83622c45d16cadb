package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/hosbabel/hosbabel/internal/tui"
)

// NewBootCmd creates the boot command: animation, then the console
func NewBootCmd(deps *Dependencies) *cobra.Command {
	var (
		skipBoot bool
		duration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "boot",
		Short: "Play the boot animation, then open the console",
		Long: `Play the HOS boot animation and hand over to the login console.

Press Esc, Space or Enter to skip the animation. --skip-boot (or
skip_boot in the config file) starts directly at the console.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := tui.StartupOptions{
				SkipBoot:     skipBoot || deps.Config.SkipBoot,
				BootDuration: duration,
				Console:      consoleOptions(deps),
			}
			return deps.TUI.RunStartup(opts)
		},
	}

	cmd.Flags().BoolVar(&skipBoot, "skip-boot", false, "Start at the console")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Animation length (default 9.3s)")
	return cmd
}

// NewConsoleCmd creates the console command
func NewConsoleCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Open the login console",
		Long: `Open the HOS login console. Any user name and password are
rejected, after which the terminal fills with BABEL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.TUI.RunConsole(consoleOptions(deps))
		},
	}
}

func consoleOptions(deps *Dependencies) tui.ConsoleOptions {
	return tui.ConsoleOptions{Columns: deps.Config.BabelColumns}
}
