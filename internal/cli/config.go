package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/promptdeck/flownote/pkg/layout"
)

// Config holds the TOML-configurable settings. Zero values mean "use the
// package default", so a partial config file only overrides what it names.
type Config struct {
	Parse  ParseConfig  `toml:"parse"`
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// ParseConfig tunes the diagram parser.
type ParseConfig struct {
	// RowTolerance is the vertical distance (in grid rows) within which boxes
	// are clustered into the same layer.
	RowTolerance int `toml:"row_tolerance"`
	// MaxLabelLen caps harvested connection labels (in runes).
	MaxLabelLen int `toml:"max_label_len"`
}

// LayoutConfig tunes the editor-canvas layout.
type LayoutConfig struct {
	ColumnGap float64 `toml:"column_gap"`
	RowGap    float64 `toml:"row_gap"`
	Padding   float64 `toml:"padding"`
}

// RenderConfig sets render defaults.
type RenderConfig struct {
	Formats  []string `toml:"formats"`
	RankDir  string   `toml:"rank_dir"`
	Detailed bool     `toml:"detailed"`
}

// CacheConfig selects and configures the result cache backend.
type CacheConfig struct {
	// Backend is "file" (default), "redis", or "none".
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	lp := layout.DefaultParams()
	return Config{
		Layout: LayoutConfig{
			ColumnGap: lp.ColumnGap,
			RowGap:    lp.RowGap,
			Padding:   lp.Padding,
		},
		Cache:  CacheConfig{Backend: "file"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// LoadConfig reads a TOML config file and merges it over the defaults.
// When path is empty, the default location is tried; a missing file there is
// not an error. An explicitly given path must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "", "file", "redis", "none":
	default:
		return fmt.Errorf("unknown cache backend: %q (must be file, redis, or none)", c.Cache.Backend)
	}
	if c.Parse.RowTolerance < 0 {
		return fmt.Errorf("row_tolerance must not be negative")
	}
	return nil
}

// defaultConfigPath returns the config location using XDG standard
// (~/.config/flownote/flownote.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "flownote.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "flownote.toml"), nil
}
