package log

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// ContextWithRequestID stores the request ID in ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithContext enriches logger with correlation fields found in ctx. The
// result is a pointer so level methods can be chained on the call.
func WithContext(ctx context.Context, logger zerolog.Logger) *zerolog.Logger {
	if rid := RequestIDFromContext(ctx); rid != "" {
		logger = logger.With().Str(FieldRequestID, rid).Logger()
	}
	return &logger
}
