// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration for one batch run.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string

	// Format is json or console.
	// Default: json
	Format string

	// Caller adds file:line to every entry.
	Caller bool

	// Output defaults to os.Stderr so stdout stays free for tooling.
	Output io.Writer
}

// DefaultConfig returns the configuration used before Init is called.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
		Output: os.Stderr,
	}
}

var (
	global zerolog.Logger
	mu     sync.RWMutex
)

//nolint:gochecknoinits // config errors must be loggable before Init
func init() {
	global = build(DefaultConfig())
}

// Init replaces the global logger. Calling it again reconfigures.
func Init(cfg Config) {
	l := build(cfg)

	mu.Lock()
	global = l
	mu.Unlock()
}

// build creates a logger from cfg and sets the process-wide level.
// Every entry carries the program name so mixed job logs can be split.
func build(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = cfg.Output
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	zc := zerolog.New(out).With().Timestamp().Str("app", "venuerec")
	if cfg.Caller {
		zc = zc.Caller()
	}
	return zc.Logger()
}

// parseLevel maps a configured level name to zerolog. Unknown names fall
// back to info; config validation rejects them earlier.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// current returns a copy of the global logger.
func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Fatal starts a fatal entry on the global logger; os.Exit(1) follows Msg.
// Used only before a run context exists.
func Fatal() *zerolog.Event {
	l := current()
	return l.Fatal()
}

// NewTestLogger creates a logger that writes JSON to w.
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
