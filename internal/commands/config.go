package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hosbabel/hosbabel/internal/config"
	"github.com/hosbabel/hosbabel/internal/render"
	"github.com/hosbabel/hosbabel/internal/tui"
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Long: `Show or change hosbabel settings stored in ~/.hosbabel/config.json.
Without a subcommand an interactive menu opens.

Settable keys: ` + strings.Join(config.Keys(), ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return deps.TUI.RunConfig(tui.ConfigOptions{
				Config:  cfg,
				APIBase: deps.Config.APIBase,
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying the config file, the
environment (including .env) and command-line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(deps.Config, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting in the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setConfigValue(args[0], args[1])
			if err != nil {
				return err
			}
			deps.Config = config.Resolve(cfg, apiBaseFlag)
			fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "themes",
		Short: "List screen and Markdown themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "tui_theme:")
			for _, t := range render.AvailableTUIThemes() {
				fmt.Fprintf(out, "  %-12s %s\n", t.Name, t.Description)
			}
			fmt.Fprintln(out, "markdown.style:")
			for _, t := range render.AvailableThemes() {
				fmt.Fprintf(out, "  %-12s %s\n", t.Name, t.Description)
			}
			return nil
		},
	})

	return cmd
}

// setConfigValue validates and persists a single key in the config file
func setConfigValue(key, value string) (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, err
	}

	switch key {
	case "tui_theme":
		if _, ok := render.GetTUIThemeByName(strings.TrimSpace(value)); !ok {
			return cfg, fmt.Errorf("unknown theme %q (available: %s)", value, strings.Join(render.TUIThemeNames(), ", "))
		}
	}

	if err := config.Set(&cfg, key, value); err != nil {
		return cfg, err
	}
	if err := config.SaveConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
