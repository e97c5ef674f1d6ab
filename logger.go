package vose

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with vose-specific context.
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

// WithN adds an element-count field to the logger.
func (l *Logger) WithN(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("n", n),
	}
}

// LogBuild logs a table construction.
func (l *Logger) LogBuild(n int, err error) {
	if err != nil {
		l.Error("build failed",
			"n", n,
			"error", err,
		)
	} else {
		l.Debug("build completed",
			"n", n,
		)
	}
}

// LogSnapshotSave logs a snapshot write.
func (l *Logger) LogSnapshotSave(n, bytes int, err error) {
	if err != nil {
		l.Error("snapshot save failed",
			"n", n,
			"error", err,
		)
	} else {
		l.Info("snapshot saved",
			"n", n,
			"bytes", bytes,
		)
	}
}

// LogSnapshotLoad logs a snapshot read.
func (l *Logger) LogSnapshotLoad(n int, err error) {
	if err != nil {
		l.Error("snapshot load failed",
			"error", err,
		)
	} else {
		l.Info("snapshot loaded",
			"n", n,
		)
	}
}
