package kestrel

import (
	"io"
	"log/slog"
	"os"
)

// logOutput is where loggers built from a Config write.
var logOutput io.Writer = os.Stderr

// defaultLogger is used by entities and components that are not attached to
// a scene, and by scenes created without WithLogger.
var defaultLogger = NewLogger("info", "text", logOutput)

// Logger returns the package-wide fallback logger.
func Logger() *slog.Logger {
	return defaultLogger
}

// SetLogger replaces the package-wide fallback logger. A nil logger is ignored.
func SetLogger(l *slog.Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// NewLogger builds a slog.Logger writing to w. level is one of "debug",
// "info", "warn" or "error" (default "info"); format is "json" or "text".
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("lib", "kestrel")
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
