package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/luwae/permanent/internal/core/domain"
)

// Accepted values for the enumerated settings.
var (
	OutputFormats = []string{"text", "table", "json", "yaml"}
	ColorModes    = []string{"auto", "always", "never"}
	LogLevels     = []string{"debug", "info", "warn", "error"}
	LogFormats    = []string{"text", "json"}
)

// CLIConfig is the configuration for permanent-report.
type CLIConfig struct {
	// IndexDir is the run directory analyzed when none is given on the command line.
	IndexDir string `koanf:"index_dir" yaml:"index_dir"`
	Output   string `koanf:"output" yaml:"output"` // text, table, json, yaml
	Color    string `koanf:"color" yaml:"color"`   // auto, always, never

	// AtomicLimit is the largest state count an atomic interval may reach.
	AtomicLimit int `koanf:"atomic_limit" yaml:"atomic_limit"`

	Log     LogConfig     `koanf:"log" yaml:"log"`
	Metrics MetricsConfig `koanf:"metrics" yaml:"metrics"`
	History HistoryConfig `koanf:"history" yaml:"history"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	// Textfile is written after each analysis when non-empty.
	Textfile string `koanf:"textfile" yaml:"textfile"`
}

// HistoryConfig controls the local report history.
type HistoryConfig struct {
	Enabled bool   `koanf:"enabled" yaml:"enabled"`
	Dir     string `koanf:"dir" yaml:"dir"`
}

// Default returns the default configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		IndexDir:    ".",
		Output:      "text",
		Color:       "auto",
		AtomicLimit: domain.AtomicLimit,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		History: HistoryConfig{
			Enabled: false,
			Dir:     "~/.permanent/history",
		},
	}
}

// Validate checks enumerated values and limits.
func (c *CLIConfig) Validate() error {
	if err := oneOf("output", c.Output, OutputFormats); err != nil {
		return err
	}
	if err := oneOf("color", c.Color, ColorModes); err != nil {
		return err
	}
	if err := oneOf("log.level", c.Log.Level, LogLevels); err != nil {
		return err
	}
	if err := oneOf("log.format", c.Log.Format, LogFormats); err != nil {
		return err
	}
	if c.AtomicLimit < 1 {
		return fmt.Errorf("atomic_limit must be at least 1, got %d", c.AtomicLimit)
	}
	if c.History.Enabled && c.History.Dir == "" {
		return fmt.Errorf("history.dir is required when history is enabled")
	}
	return nil
}

// Flatten returns the config as dotted koanf keys.
func (c *CLIConfig) Flatten() map[string]any {
	return map[string]any{
		"index_dir":        c.IndexDir,
		"output":           c.Output,
		"color":            c.Color,
		"atomic_limit":     c.AtomicLimit,
		"log.level":        c.Log.Level,
		"log.format":       c.Log.Format,
		"metrics.textfile": c.Metrics.Textfile,
		"history.enabled":  c.History.Enabled,
		"history.dir":      c.History.Dir,
	}
}

func oneOf(key, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("invalid %s %q (want %s)", key, value, strings.Join(allowed, "|"))
}
