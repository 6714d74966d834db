package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		debug     bool
		expected  slog.Level
	}{
		{"default", 0, false, slog.LevelWarn},
		{"negative", -1, false, slog.LevelWarn},
		{"verbose", 1, false, slog.LevelInfo},
		{"very verbose", 2, false, slog.LevelDebug},
		{"debug flag", 0, true, slog.LevelDebug},
		{"debug wins", 1, true, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevelFromVerbosity(tt.verbosity, tt.debug))
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("loaded config", "path", ".cosmosjson.yml")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, `msg="loaded config"`)
	assert.Contains(t, out, "path=.cosmosjson.yml")
}

func TestNewDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		assert.False(t, logger.Enabled(context.Background(), level))
	}
}
