package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	original := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(original)

	e := echo.New()
	e.Use(middleware.RequestID())
	e.Use(Logger)
	e.GET("/dashboard", func(c echo.Context) error {
		FromContext(c.Request().Context()).Info("handled")
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	reqID := rec.Header().Get(echo.HeaderXRequestID)
	assert.NotEmpty(t, reqID)
	assert.Contains(t, buf.String(), "request_id="+reqID)
	assert.Contains(t, buf.String(), "path=/dashboard")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Same(t, slog.Default(), FromContext(req.Context()))
}
