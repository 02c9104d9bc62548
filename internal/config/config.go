// Package config loads board settings from defaults, a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Default values.
const (
	DefaultConfigFile = "~/.config/kanban/config.toml"
	DefaultDataFile   = "~/.kanban/board.json"
	DefaultKey        = "todoTasks"
	DefaultRedisAddr  = "localhost:6379"
	DefaultTimeout    = 2 * time.Second
	DefaultLogLevel   = "info"
)

// Config holds the full configuration.
type Config struct {
	Storage Storage `toml:"storage"`
	Log     Log     `toml:"log"`

	// Path of the file the config was read from, if any.
	Source string `toml:"-"`
}

// Storage selects where the todo column lives.
type Storage struct {
	Backend   string   `toml:"backend"`
	Path      string   `toml:"path"`
	Key       string   `toml:"key"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
	Timeout   Duration `toml:"timeout"`
}

// Log configures the log file. An empty File discards logs.
type Log struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Duration is a time.Duration that decodes from TOML strings like "2s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendFile
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultDataFile
	}
	if cfg.Storage.Key == "" {
		cfg.Storage.Key = DefaultKey
	}
	if cfg.Storage.RedisAddr == "" {
		cfg.Storage.RedisAddr = DefaultRedisAddr
	}
	if cfg.Storage.Timeout.Duration == 0 {
		cfg.Storage.Timeout.Duration = DefaultTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

// Load reads the config file at path, then applies KANBAN_* environment
// overrides and defaults. An empty path uses KANBAN_CONFIG or
// DefaultConfigFile; a missing default file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		if v := os.Getenv("KANBAN_CONFIG"); v != "" {
			path, explicit = v, true
		} else {
			path = DefaultConfigFile
		}
	}
	path = expandPath(path)

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) || explicit {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	} else {
		cfg.Source = path
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	setDefaults(cfg)

	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("KANBAN_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("KANBAN_DATA"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("KANBAN_KEY"); v != "" {
		cfg.Storage.Key = v
	}
	if v := os.Getenv("KANBAN_REDIS_ADDR"); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := os.Getenv("KANBAN_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid KANBAN_REDIS_DB: %w", err)
		}
		cfg.Storage.RedisDB = db
	}
	if v := os.Getenv("KANBAN_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("KANBAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// Validate checks values that defaults cannot fix.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend %q (want %s, %s or %s)", c.Storage.Backend, BackendFile, BackendRedis, BackendMemory)
	}
	if c.Storage.RedisDB < 0 {
		return fmt.Errorf("invalid redis_db %d: must not be negative", c.Storage.RedisDB)
	}
	if c.Storage.Timeout.Duration < 0 {
		return fmt.Errorf("invalid storage timeout %s: must not be negative", c.Storage.Timeout)
	}
	return nil
}

// expandPath expands environment variables and a leading ~/.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}
