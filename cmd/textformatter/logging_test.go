package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		quiet, verbose bool
		enabled        slog.Level
		disabled       slog.Level
	}{
		{"default", false, false, slog.LevelInfo, slog.LevelDebug},
		{"verbose", false, true, slog.LevelDebug, slog.LevelDebug - 1},
		{"quiet", true, false, slog.LevelError, slog.LevelWarn},
		{"quiet wins", true, true, slog.LevelError, slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger := newLogger(&bytes.Buffer{}, tt.quiet, tt.verbose)
			if !logger.Enabled(context.Background(), tt.enabled) {
				t.Errorf("level %v should be enabled", tt.enabled)
			}
			if logger.Enabled(context.Background(), tt.disabled) {
				t.Errorf("level %v should be disabled", tt.disabled)
			}
		})
	}
}
