// Package logger sets up structured logging and crash reports.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Options select the handler.
type Options struct {
	Verbose bool
	// JSON switches from the text handler to the JSON handler.
	JSON bool
}

// New builds a slog.Logger writing to w. Verbose lowers the level to debug.
func New(w io.Writer, opts Options) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(w, handlerOpts)
	} else {
		h = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(h)
}

// Discard returns a logger that drops everything. Tests use it.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
