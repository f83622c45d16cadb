// Package config handles configuration for hosbabel.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that supply the backend base URL, first match wins
var APIBaseEnvVars = []string{"HOS_BABEL_API_BASE", "EXPO_PUBLIC_API_BASE"}

// MarkdownConfig configures how replies are rendered
type MarkdownConfig struct {
	Style string `json:"style"` // "babel", a glamour standard style, or path to JSON theme
}

// Config represents the user configuration
type Config struct {
	// APIBase is the backend root. Empty means offline mode.
	APIBase string `json:"api_base"`
	// SkipBoot jumps straight to the console when running `hosbabel boot`.
	SkipBoot bool `json:"skip_boot"`
	// BabelColumns is the display width at which a babel line wraps.
	BabelColumns    int            `json:"babel_columns"`
	Verbose         bool           `json:"verbose"`
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	TUITheme        string         `json:"tui_theme,omitempty"`
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{Style: "babel"}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		APIBase:         "",
		SkipBoot:        false,
		BabelColumns:    48,
		Verbose:         false,
		CopyToClipboard: true,
		TUITheme:        "babel",
		Markdown:        DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".hosbabel"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.BabelColumns <= 0 {
		cfg.BabelColumns = DefaultConfig().BabelColumns
	}
	cfg.APIBase = NormalizeAPIBase(cfg.APIBase)

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env")
// without overriding variables already present in the environment.
// Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// APIBaseFromEnv returns the first non-empty base URL among APIBaseEnvVars
func APIBaseFromEnv() (string, bool) {
	for _, key := range APIBaseEnvVars {
		if v, ok := os.LookupEnv(key); ok {
			if v = strings.TrimSpace(v); v != "" {
				return NormalizeAPIBase(v), true
			}
		}
	}
	return "", false
}

// Resolve applies env and flag overrides on top of the file configuration.
// Precedence: flag > environment (including .env) > config file > default.
func Resolve(cfg Config, flagAPIBase string) Config {
	if base, ok := APIBaseFromEnv(); ok {
		cfg.APIBase = base
	}
	if strings.TrimSpace(flagAPIBase) != "" {
		cfg.APIBase = NormalizeAPIBase(flagAPIBase)
	}
	return cfg
}

// NormalizeAPIBase trims whitespace and trailing slashes so endpoint paths
// can be appended directly.
func NormalizeAPIBase(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// Keys returns the settable configuration keys
func Keys() []string {
	return []string{"api_base", "skip_boot", "babel_columns", "verbose", "copy_to_clipboard", "tui_theme", "markdown.style"}
}

// Set updates a single key from its string form
func Set(cfg *Config, key, value string) error {
	switch key {
	case "api_base":
		cfg.APIBase = NormalizeAPIBase(value)
	case "tui_theme":
		cfg.TUITheme = strings.TrimSpace(value)
	case "markdown.style":
		cfg.Markdown.Style = strings.TrimSpace(value)
	case "babel_columns":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 8 {
			return fmt.Errorf("babel_columns must be an integer >= 8, got %q", value)
		}
		cfg.BabelColumns = n
	case "skip_boot", "verbose", "copy_to_clipboard":
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s must be true or false, got %q", key, value)
		}
		switch key {
		case "skip_boot":
			cfg.SkipBoot = b
		case "verbose":
			cfg.Verbose = b
		default:
			cfg.CopyToClipboard = b
		}
	default:
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}
