package server

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPErrorHandler_WithStackTrace(t *testing.T) {
	// --- Setup ---
	e := echo.New()

	// 1. Capture slog output in a buffer for the duration of the test.
	var logBuffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuffer, &slog.HandlerOptions{AddSource: true}))
	originalLogger := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(originalLogger)

	// 2. Install the handler under test.
	setupErrorHandling(e)

	// 3. A route whose error is not an *echo.HTTPError.
	e.GET("/test-unhandled-error", func(c echo.Context) error {
		return errors.New("a deliberate unhandled error occurred")
	})

	// --- Act ---
	req := httptest.NewRequest(http.MethodGet, "/test-unhandled-error", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// --- Assert ---
	require.Equal(t, http.StatusInternalServerError, rec.Code, "unhandled errors become a 500")

	logOutput := logBuffer.String()
	assert.Contains(t, logOutput, "Internal Server Error (Unhandled)")
	assert.Contains(t, logOutput, "error=\"a deliberate unhandled error occurred\"")
	assert.Contains(t, logOutput, "stack_trace=", "log must carry the stack_trace field")

	// A real stack trace starts in runtime/debug and passes through this file.
	assert.Contains(t, logOutput, "runtime/debug/stack.go")
	assert.Contains(t, logOutput, "internal/server/server_test.go")
}

func TestHTTPErrorHandler_PassesThroughHTTPErrors(t *testing.T) {
	e := echo.New()

	var logBuffer bytes.Buffer
	originalLogger := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logBuffer, nil)))
	defer slog.SetDefault(originalLogger)

	setupErrorHandling(e)

	// HTTP errors keep their status and message and are not logged as unhandled.
	e.GET("/teapot", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, rec.Body.String(), "short and stout")

	// echo's own 404 takes the same path.
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.NotContains(t, logBuffer.String(), "Unhandled")
}
