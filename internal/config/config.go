// ABOUTME: App configuration: data dir and widget backend selection.
// ABOUTME: JSON file at the XDG config path with environment variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"

	"github.com/harperreed/readiness/internal/storage"
)

// Widget backend names.
const (
	WidgetFile  = "file"
	WidgetCharm = "charm"
	WidgetOff   = "off"
)

// Config stores readiness tool configuration. This is the app's plumbing
// (where data lives, which widget surface to publish to); the scoring
// settings live in the settings store and drive recalculation.
type Config struct {
	// DataDir is the root directory for data storage. The SQLite
	// database and the sample cache live here. Supports ~ expansion.
	// Defaults to ~/.local/share/readiness.
	DataDir string `json:"data_dir,omitempty" env:"READINESS_DATA_DIR"`

	// Widget selects the widget publisher: "file" (default), "charm",
	// or "off".
	Widget string `json:"widget,omitempty" env:"READINESS_WIDGET"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetWidget returns the configured widget backend, defaulting to "file".
func (c *Config) GetWidget() string {
	if c.Widget == "" {
		return WidgetFile
	}
	return c.Widget
}

// DBPath returns the SQLite database path inside the data dir.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), "readiness.db")
}

// CacheDir returns the biometric sample cache directory.
func (c *Config) CacheDir() string {
	return filepath.Join(c.GetDataDir(), "cache")
}

// OpenStorage opens the day-record store at the configured path.
func (c *Config) OpenStorage() (*storage.DB, error) {
	return storage.Open(c.DBPath())
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "readiness", "config.json")
}

// Load reads config from disk, then applies environment overrides.
func Load() (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(GetConfigPath())
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	switch cfg.GetWidget() {
	case WidgetFile, WidgetCharm, WidgetOff:
	default:
		return nil, fmt.Errorf("unknown widget backend: %q", cfg.Widget)
	}
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
