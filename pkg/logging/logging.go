// Package logging configures log/slog for spralpkg and carries loggers
// through context.Context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel overrides the log level when set
const EnvLogLevel = "LOG_LEVEL"

type key struct{}

var loggerKey = key{}

// ParseLevel parses a level name, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to w in the given format ("json" or "text")
// tagged with module and version
func New(w io.Writer, format, module, version string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h).With("module", module, "version", version)
}

// SetDefault installs a stderr logger as the slog default. LOG_LEVEL wins over
// the debug flag.
func SetDefault(format, module, version string, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	if env := os.Getenv(EnvLogLevel); env != "" {
		level = ParseLevel(env)
	}

	logger := New(os.Stderr, format, module, version, level)
	slog.SetDefault(logger)
	return logger
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithLogger returns a new context with the provided logger embedded
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from ctx, falling back to slog.Default()
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
