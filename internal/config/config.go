// Package config loads the application configuration from YAML with
// environment overrides. A missing file is not an error; defaults apply.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DataDir holds the bolt database file.
	DataDir string `yaml:"data_dir" json:"data_dir"`

	History HistoryConfig `yaml:"history" json:"history"`
	Quota   QuotaConfig   `yaml:"quota" json:"quota"`
	Log     LogConfig     `yaml:"log" json:"log"`
}

type HistoryConfig struct {
	// Limit caps the number of undo snapshots kept in memory.
	Limit int `yaml:"limit" json:"limit"`
}

type QuotaConfig struct {
	// Bytes is the soft storage ceiling; 0 keeps the default, -1 disables.
	Bytes        int64   `yaml:"bytes" json:"bytes"`
	WarnFraction float64 `yaml:"warn_fraction" json:"warn_fraction"`
}

type LogConfig struct {
	Level    string `yaml:"level" json:"level"`
	Encoding string `yaml:"encoding" json:"encoding"`
}

func (c *Config) ApplyDefaults() {
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.DataDir = filepath.Join(home, ".gtdone")
	}
	if c.History.Limit == 0 {
		c.History.Limit = 50
	}
	if c.Quota.Bytes == 0 {
		c.Quota.Bytes = 5 << 20
	}
	if c.Quota.WarnFraction == 0 {
		c.Quota.WarnFraction = 0.8
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Encoding == "" {
		c.Log.Encoding = "console"
	}
}

// Load reads the config file, layers environment overrides on top, and
// fills in defaults. A nonexistent path yields the default config.
func Load(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		// fine, env and defaults only
	default:
		return nil, err
	}
	c.applyEnv()
	c.ApplyDefaults()
	return &c, nil
}
