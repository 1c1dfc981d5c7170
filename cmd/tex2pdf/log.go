package main

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates the logger used by long-running commands (watch, build).
// One-shot commands print plain lines instead; a timestamped logger only
// earns its keep when output accumulates over time.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
}
