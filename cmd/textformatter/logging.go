package main

import (
	"io"
	"log/slog"
)

// newLogger builds the stderr text logger.
// Verbose enables pipeline stage logs; quiet keeps errors only.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
