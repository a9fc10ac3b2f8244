package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// With derives a context whose logger carries the extra key-value fields.
// Middleware uses it to stamp the trace id onto every line downstream.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, ctxKey{}, From(ctx).With(fields...))
}

// From returns the contextual logger, falling back to the process logger
// when the context carries none.
func From(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return LoggerWrapper()
}
