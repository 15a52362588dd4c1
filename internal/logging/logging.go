package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New initializes a new slog logger and sets it as the default.
// format is "text" (default, with source locations) or "json".
// level is one of debug, info, warn or error and defaults to debug.
func New(format, level string) *slog.Logger {
	logger := NewWithWriter(os.Stdout, format, level)
	slog.SetDefault(logger)
	return logger
}

// NewWithWriter builds a logger writing to w without touching the default logger.
func NewWithWriter(w io.Writer, format, level string) *slog.Logger {
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: ParseLevel(level),
		})
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     ParseLevel(level),
			AddSource: true,
		})
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level, falling back to debug.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
