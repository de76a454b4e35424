package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// WithAccountID tags the request logger with the acting account so every
// later line carries it.
func WithAccountID(ctx context.Context, accountID string) context.Context {
	return WithContext(ctx, FromContext(ctx).With("account_id", accountID))
}
