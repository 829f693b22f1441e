// Package logging builds the process logger for the tickreg CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// FormatEnv names the environment variable that selects the handler.
const FormatEnv = "LOG_FORMAT"

// New returns a logger writing to w. LOG_FORMAT selects the handler: "json"
// for structured output, anything else (including unset) for text.
// Verbose lowers the level from warn to debug, so accepted events are only
// logged on request while rejections always are.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	switch strings.ToLower(os.Getenv(FormatEnv)) {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: verbose,
		})
	}
	return slog.New(handler)
}

// Setup is New followed by slog.SetDefault.
func Setup(w io.Writer, verbose bool) *slog.Logger {
	logger := New(w, verbose)
	slog.SetDefault(logger)
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
