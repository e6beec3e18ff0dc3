// Package config loads tenniscalc settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file looked up in the working directory when
// --config is not given.
const DefaultPath = ".tenniscalc.toml"

// Config represents the application configuration.
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Ingest IngestConfig `toml:"ingest"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
	Watch  WatchConfig  `toml:"watch"`
}

// StoreConfig contains persistence settings.
type StoreConfig struct {
	Path string `toml:"path"` // SQLite file holding the tournament between runs
}

// IngestConfig contains match ingestion settings.
type IngestConfig struct {
	Overwrite   bool `toml:"overwrite"`    // Replace matches with a repeated id
	SkipInvalid bool `toml:"skip_invalid"` // Continue past bad match blocks
}

// OutputConfig contains CLI output settings.
type OutputConfig struct {
	Format string `toml:"format"` // "text" or "json"
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// WatchConfig contains settings for the watch command.
type WatchConfig struct {
	Debounce string `toml:"debounce"` // Quiet period before re-ingesting (e.g., "200ms")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path: ".tournament.db",
		},
		Ingest: IngestConfig{
			Overwrite:   true,
			SkipInvalid: false,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Watch: WatchConfig{
			Debounce: "200ms",
		},
	}
}

// Load loads the configuration from path. Returns the default config if the
// file doesn't exist. Keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return config, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("store path cannot be empty")
	}

	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format %q (must be 'text' or 'json')", c.Output.Format)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn or error)", c.Log.Level)
	}

	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("invalid watch debounce %q: %w", c.Watch.Debounce, err)
	}
	if d < 0 {
		return fmt.Errorf("watch debounce cannot be negative: %s", c.Watch.Debounce)
	}

	return nil
}

// GetWatchDebounce returns the watch debounce as a duration.
func (c *Config) GetWatchDebounce() (time.Duration, error) {
	return time.ParseDuration(c.Watch.Debounce)
}
