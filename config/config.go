package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the shared settings for the histtrader tools. Every value
// can be overridden by a command-line flag; the file just sets defaults.
type Config struct {
	Archive  ArchiveConfig  `json:"archive" yaml:"archive"`
	Backtest BacktestConfig `json:"backtest" yaml:"backtest"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// ArchiveConfig describes the trade archive being maintained.
type ArchiveConfig struct {
	Path   string `json:"path" yaml:"path"`
	Symbol string `json:"symbol" yaml:"symbol"`
	Pages  int    `json:"pages" yaml:"pages"` // fetch pages per invocation
}

// BacktestConfig contains simulator parameters.
type BacktestConfig struct {
	Trials   int     `json:"trials" yaml:"trials"`
	Fee      float64 `json:"fee" yaml:"fee"`
	Strategy string  `json:"strategy" yaml:"strategy"`
	Verbose  bool    `json:"verbose" yaml:"verbose"`
}

// JournalConfig controls backtest run journaling. An empty DBPath disables
// the journal entirely.
type JournalConfig struct {
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file, trying YAML first and
// falling back to JSON.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML or JSON by extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Archive.Symbol == "" {
		return fmt.Errorf("archive.symbol is required")
	}
	if c.Archive.Pages < 0 {
		return fmt.Errorf("archive.pages must not be negative")
	}
	if c.Backtest.Trials <= 0 {
		return fmt.Errorf("backtest.trials must be positive")
	}
	if c.Backtest.Fee < 0 || c.Backtest.Fee >= 1 {
		return fmt.Errorf("backtest.fee must be in [0, 1)")
	}
	if c.Backtest.Strategy == "" {
		return fmt.Errorf("backtest.strategy is required")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Archive: ArchiveConfig{
			Path:   "./historical_trades.json",
			Symbol: "ETHBTC",
			Pages:  100,
		},
		Backtest: BacktestConfig{
			Trials:   10000,
			Fee:      0.00001,
			Strategy: "dip-exit",
		},
	}
}
