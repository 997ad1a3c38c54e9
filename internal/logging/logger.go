// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package logging provides centralized zerolog-based logging for ReelMatch.
//
// A single global logger is configured once at startup and shared by every
// component. Components derive child loggers that carry a "component" field:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	catalogLog := logging.WithComponent("catalog")
//	catalogLog.Warn().Err(err).Str("path", path).Msg("Catalog request failed")
//
//	logging.Ctx(ctx).Info().Msg("Recommendations generated")
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error,
	// fatal, panic or disabled. Unknown values fall back to info.
	Level string

	// Format is the output format: json or console.
	// Default: json
	Format string

	// Caller includes caller file and line number in logs.
	Caller bool

	// Timestamp enables timestamps in log output.
	// Default: true
	Timestamp bool

	// Service and Version are stamped on every line when set.
	Service string
	Version string

	// Output is the writer for log output.
	// Default: os.Stderr
	Output io.Writer
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
		Service:   "reelmatch",
		Output:    os.Stderr,
	}
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

//nolint:gochecknoinits // logging must work before Init is called
func init() {
	initLogger(DefaultConfig())
}

// Init reconfigures the global logger. It may be called more than once.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	initLogger(cfg)
}

// initLogger must be called with mu held.
func initLogger(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.MessageFieldName = "message"

	output := cfg.Output
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	lc := zerolog.New(output).With()
	if cfg.Timestamp {
		lc = lc.Timestamp()
	}
	if cfg.Caller {
		lc = lc.Caller()
	}
	if cfg.Service != "" {
		lc = lc.Str("service", cfg.Service)
	}
	if cfg.Version != "" {
		lc = lc.Str("version", cfg.Version)
	}
	log = lc.Logger()
}

// parseLevel maps a configured level to zerolog, accepting "warning" as an
// alias. Empty or unknown levels mean info.
func parseLevel(level string) zerolog.Level {
	lvl, ok := lookupLevel(level)
	if !ok {
		return zerolog.InfoLevel
	}
	return lvl
}

func lookupLevel(level string) (zerolog.Level, bool) {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "":
		return zerolog.NoLevel, false
	case "warning":
		level = "warn"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.NoLevel, false
	}
	return lvl, true
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	_, ok := lookupLevel(level)
	return ok
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	return *current()
}

// SetLogger replaces the global logger. Tests use it to capture output.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// WithComponent creates a child logger with a component field.
//
//	storeLog := logging.WithComponent("store")
func WithComponent(component string) zerolog.Logger {
	return current().With().Str("component", component).Logger()
}

// Debug starts a debug-level event on the global logger.
func Debug() *zerolog.Event { return current().Debug() }

// Info starts an info-level event on the global logger.
func Info() *zerolog.Event { return current().Info() }

// Warn starts a warn-level event on the global logger.
func Warn() *zerolog.Event { return current().Warn() }

// Error starts an error-level event on the global logger.
func Error() *zerolog.Event { return current().Error() }

// Fatal logs at fatal level and exits the process once the event is sent.
func Fatal() *zerolog.Event { return current().Fatal() }

// Err starts an error-level event carrying err, or an info-level one when
// err is nil.
func Err(err error) *zerolog.Event { return current().Err(err) }

// NewTestLogger creates a logger that writes JSON to w.
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
