package arcmem

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with arcmem-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithComponent adds a component field to the logger.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", name),
	}
}

// WithLimit adds the configured memory limit to the logger.
func (l *Logger) WithLimit(limit int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("memory_limit", limit),
	}
}

// LogLeaks reports allocations still live when a heap is shut down.
func (l *Logger) LogLeaks(ctx context.Context, ids []uint64) {
	if len(ids) == 0 {
		l.DebugContext(ctx, "no live allocations")
		return
	}
	l.WarnContext(ctx, "live allocations at shutdown",
		"count", len(ids),
		"ids", ids,
	)
}
