// Package config resolves settings from defaults, an optional YAML file,
// an optional .env file and CLEANBOT_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds settings shared by the CLI and the web server.
type Config struct {
	LogLevel      string        `yaml:"log_level"`      // debug|info|warn|error
	PersistPath   string        `yaml:"persist_path"`   // plan archive directory
	Addr          string        `yaml:"addr"`           // web listen address
	SearchTimeout time.Duration `yaml:"search_timeout"` // per-request bound in the web server, 0 = none
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:      "warn",
		PersistPath:   "./data",
		Addr:          ":8080",
		SearchTimeout: 30 * time.Second,
	}
}

// Load layers path (when non-empty) and the environment over the defaults.
// A missing .env file is not an error; a missing explicit config file is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("CLEANBOT_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("CLEANBOT_PERSIST_PATH"); ok {
		cfg.PersistPath = v
	}
	if v, ok := os.LookupEnv("CLEANBOT_ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := os.LookupEnv("CLEANBOT_SEARCH_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CLEANBOT_SEARCH_TIMEOUT must be a duration: %w", err)
		}
		cfg.SearchTimeout = d
	}
	return nil
}

// Level maps a level name to slog; unknown names fall back to info.
func Level(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
