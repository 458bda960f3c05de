// Package config loads tuneshell host settings from YAML.
package config

import (
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds the host program's settings.
type Config struct {
	// Prompt is written before each input line.
	Prompt string `yaml:"prompt"`

	// Banner is written once when a session starts.
	Banner string `yaml:"banner"`

	// Listen is the TCP address served by "tuneshell serve".
	Listen string `yaml:"listen"`

	// LogLevel is a zap level name: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	History HistoryConfig `yaml:"history"`

	// Vars seeds the demo tunable variables by name.
	Vars map[string]float64 `yaml:"vars"`
}

// HistoryConfig sizes the command history ring.
type HistoryConfig struct {
	Size         int  `yaml:"size"`
	BlockOnEmpty bool `yaml:"block_on_empty"`
}

// DefaultConfig returns the settings used for anything a file leaves out.
func DefaultConfig() *Config {
	return &Config{
		Prompt:   "> ",
		Banner:   "tuneshell ready, type help",
		Listen:   "127.0.0.1:2323",
		LogLevel: "info",
		History: HistoryConfig{
			Size:         10,
			BlockOnEmpty: true,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values yaml cannot.
func (c *Config) Validate() error {
	if c.History.Size <= 0 {
		return fmt.Errorf("history.size must be positive, got %d", c.History.Size)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
