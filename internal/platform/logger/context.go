package logger

import (
	"context"
	"log/slog"
)

// contextKey is an unexported type so context values set by this package
// cannot collide with keys from other packages.
type contextKey struct{}

var loggerKey = contextKey{}

// WithLogger returns a copy of ctx carrying the given logger. Request
// middleware uses this to attach a logger enriched with the trace ID so
// every log line downstream of the handler is correlatable.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext returns the logger stored in ctx, or slog.Default() when
// none was attached. The result is never nil.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
			return log
		}
	}
	return slog.Default()
}

// FromContextOrDefault returns the logger from ctx if present, otherwise
// the provided fallback, otherwise slog.Default(). Components hold their
// own child logger and use this so request-scoped loggers win when
// available.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
			return log
		}
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
