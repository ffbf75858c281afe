// Package config provides configuration management for the reporting application.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Report  ReportConfig  `mapstructure:"report"`
	Export  ExportConfig  `mapstructure:"export"`
	UI      UIConfig      `mapstructure:"ui"`
	Prices  PricesConfig  `mapstructure:"prices"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ReportConfig holds console report configuration.
type ReportConfig struct {
	ReasoningWidth int      `mapstructure:"reasoning_width"`
	AnalystOrder   []string `mapstructure:"analyst_order"` // display names; empty = built-in order
}

// ExportConfig holds workbook export configuration.
type ExportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	HistoryDB string `mapstructure:"history_db"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// PricesConfig holds price-history upstream configuration.
type PricesConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// ServerConfig holds the passthrough server configuration.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/fund-reporter"
	}
	return filepath.Join(home, ".config", "fund-reporter")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		// Config file not found, write the template for next time
		if err := createTemplateConfig(configDir); err != nil {
			return nil, fmt.Errorf("creating config template: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	// An empty history_db means the default location, not "no history".
	if cfg.Export.HistoryDB == "" {
		cfg.Export.HistoryDB = filepath.Join(DefaultConfigDir(), "history.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("report.reasoning_width", 60)
	v.SetDefault("export.output_dir", ".")
	v.SetDefault("export.history_db", filepath.Join(DefaultConfigDir(), "history.db"))
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("prices.base_url", "https://api.financialdatasets.ai")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FINANCIAL_DATASETS_API_KEY"); v != "" {
		cfg.Prices.APIKey = v
	}
	if v := os.Getenv("FUND_REPORTER_OUTPUT_DIR"); v != "" {
		cfg.Export.OutputDir = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Report.ReasoningWidth <= 0 {
		return fmt.Errorf("reasoning_width must be positive, got %d", c.Report.ReasoningWidth)
	}
	if c.Export.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}
