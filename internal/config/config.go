// Package config handles configuration loading for sizegrid.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/sizeorder"
)

// DefaultFile is the config file looked up when no path is given.
const DefaultFile = "sizegrid.yaml"

// Config holds the application configuration.
type Config struct {
	Database  string         `yaml:"database"`
	LogLevel  string         `yaml:"log_level"`
	SizeOrder string         `yaml:"size_order"` // optional path to a rank table
	Document  DocumentConfig `yaml:"document"`
	ReadOnly  bool           `yaml:"read_only"`
	Dir       string         `yaml:"-"` // directory of the loaded file, set by Load
}

// DocumentConfig controls document export layout.
type DocumentConfig struct {
	PageWidthMM float64 `yaml:"page_width_mm"`
	MarginMM    float64 `yaml:"margin_mm"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Database: "sizegrid.db",
		LogLevel: "info",
		Document: DocumentConfig{
			PageWidthMM: 210,
			MarginMM:    12,
		},
	}
}

// Load reads configPath over the defaults. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if configPath == "" {
		configPath = DefaultFile
	}

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		return &cfg, nil
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	cfg.Dir = filepath.Dir(configPath)

	// Apply defaults for zero values
	def := DefaultConfig()
	if cfg.Database == "" {
		cfg.Database = def.Database
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.Document.PageWidthMM <= 0 {
		cfg.Document.PageWidthMM = def.Document.PageWidthMM
	}
	if cfg.Document.MarginMM < 0 {
		cfg.Document.MarginMM = def.Document.MarginMM
	}

	return &cfg, nil
}

// resolve makes p relative to the config file directory.
func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// DatabasePath returns the database path resolved against the config file.
func (c *Config) DatabasePath() string {
	return c.resolve(c.Database)
}

// Ranks loads the configured size rank table, or the default one.
func (c *Config) Ranks() (*sizeorder.Ranks, error) {
	if c.SizeOrder == "" {
		return sizeorder.DefaultRanks(), nil
	}
	f, err := os.Open(c.resolve(c.SizeOrder))
	if err != nil {
		return nil, fmt.Errorf("open size order: %w", err)
	}
	defer f.Close()

	return sizeorder.LoadRanks(f)
}
