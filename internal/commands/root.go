// Package commands provides CLI commands for hosbabel.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/hosbabel/hosbabel/internal/config"
	"github.com/hosbabel/hosbabel/internal/logger"
	"github.com/hosbabel/hosbabel/internal/render"
	"github.com/hosbabel/hosbabel/internal/tui"
)

var (
	// Global flags
	apiBaseFlag string
	verboseFlag bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"

	deps = NewDependencies()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hosbabel",
	Short: "Terminal front-end for the HOS_BABEL chat backend",
	Long: `hosbabel talks to a HOS_BABEL backend from the terminal. Without a
subcommand it opens the chat screen.

The backend root comes from --api-base, HOS_BABEL_API_BASE (or
EXPO_PUBLIC_API_BASE, also read from .env) or the config file. With no
base URL every screen runs in offline mode.

Examples:
  hosbabel                                   Start the chat screen
  hosbabel boot                              Boot animation, then the console
  hosbabel ask "who built the tower?"        Send a single message
  hosbabel health                            Probe the backend
  hosbabel devserver --addr :8080            Run a local echo backend`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Fprintf(cmd.OutOrStdout(), "hosbabel %s (built %s)\n", Version, BuildTime)
			return nil
		}
		return runChat(deps)
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	deps.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, tui.FormatError(err))
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&apiBaseFlag, "api-base", "", "Backend root URL (overrides HOS_BABEL_API_BASE)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Debug-level logging")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	// Add subcommands
	rootCmd.AddCommand(NewChatCmd(deps))
	rootCmd.AddCommand(NewBootCmd(deps))
	rootCmd.AddCommand(NewConsoleCmd(deps))
	rootCmd.AddCommand(NewAskCmd(deps))
	rootCmd.AddCommand(NewHealthCmd(deps))
	rootCmd.AddCommand(NewOpenCmd(deps))
	rootCmd.AddCommand(NewConfigCmd(deps))
	rootCmd.AddCommand(NewDevServerCmd())
}

// setup resolves configuration once per invocation and applies it to the
// logger and themes.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v (using defaults)\n", err)
	}
	cfg = config.Resolve(cfg, apiBaseFlag)
	if verboseFlag {
		cfg.Verbose = true
	}
	deps.Config = cfg

	if dir, err := config.GetConfigDir(); err == nil {
		closer, err := logger.Setup(logger.Options{Path: logger.PathIn(dir), Verbose: cfg.Verbose})
		if err == nil {
			deps.logCloser = closer
		}
	}

	if cfg.TUITheme != "" && !render.SetTUITheme(cfg.TUITheme) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unknown theme %q, using %s\n", cfg.TUITheme, render.GetTUITheme().Name)
	}
	tui.UpdateTheme()

	logger.Named("cli").WithFields(logger.Fields{
		"command": cmd.Name(),
		"offline": cfg.APIBase == "",
	}).Debug("configuration resolved")
	return nil
}
