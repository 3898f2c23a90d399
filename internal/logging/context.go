package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is a type for context keys used by this package.
type contextKey int

const (
	sessionIDKey contextKey = iota
)

// NewSessionID returns a fresh identifier for one hydrate process run.
func NewSessionID() string {
	return uuid.NewString()
}

// WithSessionID returns a new context carrying the session ID.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// NewSessionContext derives a context with a generated session ID.
func NewSessionContext(parent context.Context) context.Context {
	return WithSessionID(parent, NewSessionID())
}

// SessionIDFromContext extracts the session ID, or "" if none is set.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// LoggerFromContext returns the default logger tagged with the session ID
// from ctx, if any.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := Logger()
	if id := SessionIDFromContext(ctx); id != "" {
		logger = logger.With(KeySession, id)
	}
	return logger
}
