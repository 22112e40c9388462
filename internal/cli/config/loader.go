package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/luwae/permanent/internal/infra/confloader"
)

// EnvPrefix prefixes the environment variables read by Load.
const EnvPrefix = confloader.DefaultEnvPrefix

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".permanent", "report.yaml")
}

// Load builds the configuration from defaults, the config file,
// PERMANENT_* environment variables and flag overrides, in rising priority.
//
// An empty path means DefaultConfigPath, which may be absent. An explicit
// path must exist. Flag keys use koanf dotted form, e.g. "log.level".
func Load(path string, flags map[string]any) (*CLIConfig, error) {
	opt := confloader.WithConfigFile(path)
	if path == "" {
		opt = confloader.WithOptionalConfigFile(DefaultConfigPath())
	}
	loader := confloader.NewLoader(confloader.WithEnvPrefix(EnvPrefix), opt)

	if err := loader.LoadMap(Default().Flatten()); err != nil {
		return nil, err
	}

	cfg := &CLIConfig{}
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if len(flags) > 0 {
		if err := loader.LoadMap(flags); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("unmarshal flags: %w", err)
		}
	}

	cfg.IndexDir = ExpandHome(cfg.IndexDir)
	cfg.History.Dir = ExpandHome(cfg.History.Dir)
	cfg.Metrics.Textfile = ExpandHome(cfg.Metrics.Textfile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the parent directory.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func Marshal(cfg *CLIConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
