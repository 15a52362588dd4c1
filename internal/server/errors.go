package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	appmiddleware "github.com/nfrund/dashview/internal/middleware"
)

// setupErrorHandling installs the HTTP error handler. Errors that are not
// *echo.HTTPError are logged with a stack trace and answered with a 500.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		appmiddleware.FromContext(c.Request().Context()).Error(
			"Internal Server Error (Unhandled)",
			slog.String("error", err.Error()),
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.String("stack_trace", string(debug.Stack())),
		)
		if rErr := c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)); rErr != nil {
			slog.Error("Failed to write error response", "error", rErr)
		}
	}
}
