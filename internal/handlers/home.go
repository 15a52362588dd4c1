package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/dashview/web/src/templates/layouts"
	"github.com/nfrund/dashview/web/src/templates/pages"
)

// HomeGet renders the home page.
func HomeGet(c echo.Context) error {
	return c.Render(http.StatusOK, "", layouts.Base("Home", "/", layouts.Node(pages.Home())))
}

// LoginGet renders the static login page.
func LoginGet(c echo.Context) error {
	return c.Render(http.StatusOK, "", layouts.Base("Login", "/login", pages.Login()))
}

// HealthGet reports liveness.
func HealthGet(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
