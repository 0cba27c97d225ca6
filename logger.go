package binsparse

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/binsparse/matrix"
)

// Logger wraps slog.Logger with container-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithName adds a container name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// WithRank adds a rank field to the logger.
func (l *Logger) WithRank(rank int) *Logger {
	return &Logger{
		Logger: l.Logger.With("rank", rank),
	}
}

// WithFormat adds a canonical format field to the logger.
func (l *Logger) WithFormat(f matrix.Format) *Logger {
	return &Logger{
		Logger: l.Logger.With("format", f.String()),
	}
}

// WithNVals adds a stored-value count field to the logger.
func (l *Logger) WithNVals(n uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("nvals", n),
	}
}

// LogSave logs a save operation.
func (l *Logger) LogSave(ctx context.Context, name string, m *matrix.Matrix, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "save completed",
			"name", name,
			"rank", m.Rank(),
			"format", m.Format().String(),
			"nvals", m.NVals(),
		)
	}
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(ctx context.Context, name string, m *matrix.Matrix, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "load completed",
			"name", name,
			"rank", m.Rank(),
			"format", m.Format().String(),
			"nvals", m.NVals(),
		)
	}
}

// LogConvert logs a format conversion.
func (l *Logger) LogConvert(ctx context.Context, from, to matrix.Format, err error) {
	if err != nil {
		l.ErrorContext(ctx, "convert failed",
			"from", from.String(),
			"to", to.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "convert completed",
			"from", from.String(),
			"to", to.String(),
		)
	}
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "delete failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "delete completed",
			"name", name,
		)
	}
}
