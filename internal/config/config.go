// Package config loads calendard configuration from an optional YAML
// file with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/suggest"
)

// LogConfig selects log verbosity and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the top-level server configuration.
type Config struct {
	// Listen is the HTTP listen address, e.g. ":4000".
	Listen string `yaml:"listen"`
	// DBPath is the SQLite database file path.
	DBPath string `yaml:"db_path"`

	Log LogConfig `yaml:"log"`

	// Suggest configures the AI suggestion provider. The API key is
	// usually supplied via OPENAI_API_KEY rather than the file.
	Suggest suggest.Config `yaml:"suggest"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Listen: ":4000",
		DBPath: "calendar.db",
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the YAML file at path, when it exists, on top of the
// defaults, then applies environment overrides. A missing file is not
// an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through to env overrides
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CALENDARD_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("CALENDARD_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("CALENDARD_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CALENDARD_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Suggest.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.Suggest.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.Suggest.Model = v
	}
}
