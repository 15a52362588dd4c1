package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RateLimiter limits each client IP to 10 requests per second with a burst of 10.
// It guards routes that call the upstream dashboard API.
func RateLimiter() echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		// An in-memory store is enough for a single instance. The rate is per
		// second; burst defaults to the same value.
		Store: middleware.NewRateLimiterMemoryStore(10),

		// Clients are identified by their real IP address.
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		// Each denied request is logged with the request ID so bursts can be traced.
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			FromContext(c.Request().Context()).Warn("rate limit exceeded", "client", identifier)
			return c.String(http.StatusTooManyRequests, "Too many requests. Please try again later.")
		},
	}
	return middleware.RateLimiterWithConfig(config)
}
