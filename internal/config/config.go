// Package config loads the optional matchreport YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/frasere/matchreport/internal/events"
)

// Config holds user settings. Command-line flags take precedence.
type Config struct {
	DatabasePath string   `yaml:"database_path"`
	Colormap     string   `yaml:"colormap"`
	TouchTypes   []string `yaml:"touch_types"`
	LogLevel     string   `yaml:"log_level"` // debug, info, warn, error
}

// Dir returns ~/.matchreport, or ".matchreport" if the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".matchreport"
	}
	return filepath.Join(home, ".matchreport")
}

// DefaultPath is the config file read when --config is not given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DatabasePath: filepath.Join(Dir(), "matches.db"),
		Colormap:     "Reds",
		TouchTypes:   append([]string(nil), events.DefaultTouchTypes...),
		LogLevel:     "warn",
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(cfg.TouchTypes) == 0 {
		cfg.TouchTypes = append([]string(nil), events.DefaultTouchTypes...)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
