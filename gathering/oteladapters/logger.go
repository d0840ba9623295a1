// Package oteladapters provides logger implementations for the store and
// service Logger interfaces, bridging to Go's log/slog and optionally to
// OpenTelemetry for trace-correlated logs.
package oteladapters

import (
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"
)

// SlogLogger adapts a *slog.Logger to the Logger interface used by the
// store and the services.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a logger backed by the given slog logger.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

// NewOTelSlogLogger creates a logger backed by the OpenTelemetry slog
// bridge, emitting to the given LoggerProvider with automatic trace
// correlation. This is the recommended setup when OpenTelemetry logging
// is configured.
func NewOTelSlogLogger(name string, provider log.LoggerProvider) *SlogLogger {
	return &SlogLogger{logger: otelslog.NewLogger(name, otelslog.WithLoggerProvider(provider))}
}

// Debug logs a debug message.
func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an info message.
func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error message.
func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}
