// Package logging constructs the CLI's structured logger.
package logging

import (
	"log/slog"
	"os"
)

// NewLogger creates a structured logger writing to stderr, so diagnostics
// never mix with the token printed on stdout. Verbose mode lowers the level
// to debug.
func NewLogger(verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
