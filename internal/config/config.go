// Package config loads the optional YAML application config.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds app-level configuration. Database location can also be set
// with the PALIPRACTICE_DB environment variable or the --db flag, which take
// precedence over the file.
type Config struct {
	DBPath    string `yaml:"db_path"`
	QueueSize int    `yaml:"queue_size"`
}

// DefaultQueueSize is the session length when the config does not set one.
const DefaultQueueSize = 20

// Default returns the built-in configuration.
func Default() Config {
	return Config{QueueSize: DefaultQueueSize}
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file is not an error; defaults are returned.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	return cfg, nil
}

// DefaultPath resolves $XDG_CONFIG_HOME/palipractice/config.yaml, falling
// back to ~/.config.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "palipractice", "config.yaml"), nil
}
