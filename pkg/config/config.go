package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// MaxHistoryLimit is the largest number of history entries ever kept.
const MaxHistoryLimit = 50

// Color modes for status output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds all configuration for regexlab
type Config struct {
	// Storage settings
	DataDir      string `yaml:"data_dir" env:"REGEXLAB_DATA_DIR"`
	HistoryLimit int    `yaml:"history_limit" env:"REGEXLAB_HISTORY_LIMIT"`

	// Matching
	MatchTimeout time.Duration `yaml:"match_timeout" env:"REGEXLAB_MATCH_TIMEOUT"`

	// Output
	ExportFormat string `yaml:"export_format" env:"REGEXLAB_FORMAT"`
	Color        string `yaml:"color" env:"REGEXLAB_COLOR"`
	Debug        bool   `yaml:"debug" env:"REGEXLAB_DEBUG"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		HistoryLimit: MaxHistoryLimit,
		ExportFormat: "json",
		Color:        ColorAuto,
	}
}

// Load loads configuration from the default file location and environment
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from path (or the default location when path
// is empty), then applies environment overrides. A missing file is not an
// error.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	configPath := path
	if configPath == "" {
		configPath = getConfigPath()
	}
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if cfg.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}

	// Validate configuration
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// DefaultDataDir returns the per-user directory holding history and favorites
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".regexlab"), nil
}

// getConfigPath returns the config file path
func getConfigPath() string {
	// Check for explicit config path
	if path := os.Getenv("REGEXLAB_CONFIG"); path != "" {
		return path
	}

	// Check XDG config directory
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "regexlab", "config.yaml")
	}

	// Fall back to home directory
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "regexlab", "config.yaml")
	}

	return ""
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(cfg *Config, path string) error {
	// #nosec G304 - The config file path comes from trusted sources (flag, env var or standard locations)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// loadFromEnv loads configuration from environment variables
func loadFromEnv(cfg *Config) error {
	if dir := os.Getenv("REGEXLAB_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}

	if limit := os.Getenv("REGEXLAB_HISTORY_LIMIT"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return fmt.Errorf("invalid REGEXLAB_HISTORY_LIMIT: %w", err)
		}
		cfg.HistoryLimit = n
	}

	if timeout := os.Getenv("REGEXLAB_MATCH_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid REGEXLAB_MATCH_TIMEOUT: %w", err)
		}
		cfg.MatchTimeout = d
	}

	if format := os.Getenv("REGEXLAB_FORMAT"); format != "" {
		cfg.ExportFormat = format
	}

	if color := os.Getenv("REGEXLAB_COLOR"); color != "" {
		cfg.Color = color
	}

	if debug := os.Getenv("REGEXLAB_DEBUG"); debug != "" {
		switch debug {
		case "true", "1", "yes":
			cfg.Debug = true
		case "false", "0", "no":
			cfg.Debug = false
		default:
			return fmt.Errorf("invalid REGEXLAB_DEBUG value: %q (use true/false)", debug)
		}
	}

	return nil
}

// validate validates the configuration
func validate(cfg *Config) error {
	if cfg.HistoryLimit < 1 || cfg.HistoryLimit > MaxHistoryLimit {
		return fmt.Errorf("history_limit must be between 1 and %d", MaxHistoryLimit)
	}

	if cfg.MatchTimeout < 0 {
		return fmt.Errorf("match_timeout must be non-negative")
	}

	switch cfg.ExportFormat {
	case "json", "csv", "txt":
	default:
		return fmt.Errorf("export_format must be one of json, csv, txt (got %q)", cfg.ExportFormat)
	}

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of auto, always, never (got %q)", cfg.Color)
	}

	return nil
}
