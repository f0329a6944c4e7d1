package logger

import (
	"context"
	"log/slog"
)

type ctxKey string

const loggerKey ctxKey = "logger"

// FromContext returns the request-scoped logger, falling back to
// slog.Default when none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// WithContest attaches the contest id to the context logger so every
// downstream log line carries it.
func WithContest(ctx context.Context, contestID string) context.Context {
	return WithLogger(ctx, FromContext(ctx).With("contest_id", contestID))
}

// WithSubmission attaches the submission id to the context logger.
func WithSubmission(ctx context.Context, submID string) context.Context {
	return WithLogger(ctx, FromContext(ctx).With("subm_id", submID))
}
