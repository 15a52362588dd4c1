package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Renderer renders page and fragment components (gomponents nodes or templ components).
type Renderer interface {
	echo.Renderer

	// RenderComponent renders a component to bytes, e.g. for an htmx fragment.
	RenderComponent(ctx context.Context, component any) ([]byte, error)

	// RenderPage writes a full HTML response.
	RenderPage(c echo.Context, status int, component any) error
}

// UniversalRenderer renders both templ.Component and gomponents.Node values.
// It also implements echo.Renderer so handlers can call c.Render(status, "", node).
type UniversalRenderer struct{}

// NewUniversalRenderer creates a new UniversalRenderer instance.
func NewUniversalRenderer() *UniversalRenderer {
	return &UniversalRenderer{}
}

// gomponentNode matches gomponents.Node without importing it.
type gomponentNode interface {
	Render(w io.Writer) error
}

func (r *UniversalRenderer) render(ctx context.Context, component any, w io.Writer) error {
	switch c := component.(type) {
	case templ.Component:
		return c.Render(ctx, w)
	case gomponentNode:
		return c.Render(w)
	default:
		return fmt.Errorf("unsupported component type %T: want templ.Component or Render(io.Writer) error", component)
	}
}

// RenderComponent implements Renderer.
func (r *UniversalRenderer) RenderComponent(ctx context.Context, component any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.render(ctx, component, &buf); err != nil {
		return nil, fmt.Errorf("failed to render component to bytes: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPage implements Renderer. The component is rendered into a buffer
// first so a failure can still produce a proper error response.
func (r *UniversalRenderer) RenderPage(c echo.Context, status int, component any) error {
	body, err := r.RenderComponent(c.Request().Context(), component)
	if err != nil {
		return err
	}
	return c.HTMLBlob(status, body)
}

// Render implements echo.Renderer. The component is passed as data; name is ignored.
func (r *UniversalRenderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	if c.Response().Header().Get(echo.HeaderContentType) == "" {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	}
	return r.render(c.Request().Context(), data, w)
}
