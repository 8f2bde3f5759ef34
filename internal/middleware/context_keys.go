package middleware

import (
	"context"
	"log/slog"
)

// contextKey is unexported so values set here cannot collide with other packages.
type contextKey string

const (
	loggerCtxKey    = contextKey("logger")
	requestIDCtxKey = contextKey("requestID")
)

// GetLoggerFromCtx returns the request-scoped logger, or slog.Default() outside a request.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// GetRequestIDFromCtx returns the request id assigned by StructuredLoggingMiddleware.
func GetRequestIDFromCtx(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDCtxKey).(string)
	return id, ok
}
