// Package logging builds the CLI's slog loggers.
package logging

import (
	"io"
	"log/slog"
)

// levelSilent is above every standard level.
const levelSilent = slog.Level(100)

// NewLogger creates a text logger writing to w at level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewDiscardLogger creates a logger that drops everything.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: levelSilent}))
}

// LevelFromVerbosity maps CLI flags to a level:
//   - debug: debug
//   - verbosity 0: warn
//   - verbosity 1: info
//   - verbosity 2+: debug
func LevelFromVerbosity(verbosity int, debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	switch {
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
