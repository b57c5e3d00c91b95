package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
	// File, when set, receives log output through a rotating writer
	// instead of stderr.
	File       string
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
		MaxSizeMB:  10,
		MaxBackups: 3,
	}
}

// ParseLevel maps a level name to a zerolog level. Unknown names return
// fallback.
func ParseLevel(name string, fallback zerolog.Level) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	}
	return fallback
}

// New creates a new zerolog logger with the given configuration. The
// returned closer releases the log file, if any.
func New(cfg Config) (zerolog.Logger, io.Closer) {
	var sink io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		rot, err := NewLogRotator(cfg.File, cfg.MaxSizeMB, cfg.MaxBackups, cfg.Compress)
		if err == nil {
			sink = rot
			closer = rot
		}
	}

	var output io.Writer = sink
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        sink,
			TimeFormat: cfg.TimeFormat,
			NoColor:    cfg.File != "",
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger(), closer
}

// NewFromEnv creates a logger based on environment variables
// EVE_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// EVE_LOG_FORMAT: json, console (default: console)
// EVE_LOG_FILE: path of a rotated log file (default: stderr)
func NewFromEnv() (zerolog.Logger, io.Closer) {
	return New(ApplyEnv(DefaultConfig()))
}

// ApplyEnv overlays the EVE_LOG_* environment variables on cfg.
func ApplyEnv(cfg Config) Config {
	if level := os.Getenv("EVE_LOG_LEVEL"); level != "" {
		cfg.Level = ParseLevel(level, cfg.Level)
	}
	if format := os.Getenv("EVE_LOG_FORMAT"); format != "" {
		switch format {
		case "json", "console":
			cfg.Format = format
		}
	}
	if file := os.Getenv("EVE_LOG_FILE"); file != "" {
		cfg.File = file
	}
	return cfg
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
