package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds settings read from GT_* environment variables.
type Config struct {
	ChromePath string        `envconfig:"CHROME_PATH"`
	Timeout    time.Duration `envconfig:"TIMEOUT" default:"60s"`
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat  string        `envconfig:"LOG_FORMAT" default:"text"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("GT", &cfg); err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if cfg.Timeout <= 0 {
		return cfg, fmt.Errorf("load config: GT_TIMEOUT must be positive, got %s", cfg.Timeout)
	}
	return cfg, nil
}

// newLogger builds a text or JSON logger writing to w.
func newLogger(w io.Writer, cfg Config) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("log format %q: want text or json", cfg.LogFormat)
	}
	return slog.New(handler).With("app", "gt"), nil
}
