// Package logging provides structured logging for the rendezvous service.
package logging

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey struct{}

// state bundles everything carried on the request context under a single
// key, so reading the request id doesn't require a separate context.Value
// lookup from reading the logger.
type state struct {
	logger    *slog.Logger
	requestID string
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// New builds a logger for the given level ("debug"|"info"|"warn"|"error",
// defaulting to info) and format ("json" or text). Every logger carries a
// "service" attribute identifying rendezvous log lines when shipped
// alongside other services. Source location is attached at debug level (to
// trace a single request) and at error level (so a failure always points at
// a line).
func New(level, format string) *slog.Logger {
	lvl, ok := levels[level]
	if !ok {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug || lvl == slog.LevelError,
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler).With("service", "rendezvous")
}

func load(ctx context.Context) state {
	if s, ok := ctx.Value(ctxKey{}).(state); ok {
		return s
	}
	return state{}
}

// WithRequestID attaches a request id to ctx, preserving any logger already
// stored there.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	s := load(ctx)
	s.requestID = requestID
	return context.WithValue(ctx, ctxKey{}, s)
}

// RequestID extracts the request id from ctx, or "" if none was set.
func RequestID(ctx context.Context) string {
	return load(ctx).requestID
}

// WithLogger attaches logger to ctx, preserving any request id already
// stored there.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	s := load(ctx)
	s.logger = logger
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext extracts the logger from ctx, or the default logger if none
// was set.
func FromContext(ctx context.Context) *slog.Logger {
	if logger := load(ctx).logger; logger != nil {
		return logger
	}
	return slog.Default()
}

// L returns the context's logger with its request id attached, if any.
func L(ctx context.Context) *slog.Logger {
	s := load(ctx)
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}
	if s.requestID != "" {
		return logger.With("request_id", s.requestID)
	}
	return logger
}
