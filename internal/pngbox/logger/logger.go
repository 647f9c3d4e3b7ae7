package logger

import "github.com/rs/zerolog"

// Logger defines the interface for logging
type Logger interface {
	Log(format string, args ...interface{})
}

// NoopLogger implements a no-op logger
type NoopLogger struct{}

func (l *NoopLogger) Log(format string, args ...interface{}) {
	// Do nothing
}

// ZeroLogger adapts a zerolog logger to the Logger interface. Library
// warnings (lenient-mode decode issues) come through at warn level.
type ZeroLogger struct {
	L zerolog.Logger
}

func (l *ZeroLogger) Log(format string, args ...interface{}) {
	l.L.Warn().Msgf(format, args...)
}

// DefaultLogger is the default logger instance
var DefaultLogger Logger = &NoopLogger{}

// SetLogger sets the default logger
func SetLogger(l Logger) {
	DefaultLogger = l
}

// Log logs a message using the default logger
func Log(format string, args ...interface{}) {
	DefaultLogger.Log(format, args...)
}
