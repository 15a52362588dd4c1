package middleware

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

type contextKey string

const loggerKey = contextKey("logger")

// Logger injects a request-scoped logger carrying the request ID and path.
// It must run after echo's RequestID middleware.
func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := c.Response().Header().Get(echo.HeaderXRequestID)
		requestLogger := slog.Default().With("request_id", reqID, "path", c.Request().URL.Path)

		c.SetRequest(c.Request().WithContext(WithLogger(c.Request().Context(), requestLogger)))
		return next(c)
	}
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the request logger, or the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
