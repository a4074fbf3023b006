// Package logger provides structured logging setup using Go's slog package.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog with printf-style convenience methods.
type Logger struct {
	slog *slog.Logger
}

// New builds a Logger writing JSON to stdout at the given level.
// With console=true it switches to the text handler for local development.
func New(level string, console bool) *Logger {
	handlerOpts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	}

	var handler slog.Handler
	if console {
		handler = slog.NewTextHandler(os.Stdout, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, handlerOpts)
	}

	// Wrap with correlation handler to auto-inject correlation_id from context
	handler = NewCorrelationHandler(handler)

	s := slog.New(handler)
	slog.SetDefault(s)

	return &Logger{slog: s}
}

func (l *Logger) Debug(format string, args ...any) {
	l.slog.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...any) {
	l.slog.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.slog.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.slog.Error(fmt.Sprintf(format, args...))
}

// Fatal logs the error and exits the process.
func (l *Logger) Fatal(err error) {
	l.slog.Error(err.Error())
	os.Exit(1)
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
