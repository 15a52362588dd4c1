package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/dashview/internal/credentials"
	dash "github.com/nfrund/dashview/internal/dashboard"
	"github.com/nfrund/dashview/internal/middleware"
	"github.com/nfrund/dashview/internal/modules/dashboard/view"
	"github.com/nfrund/dashview/internal/pubsub"
	"github.com/nfrund/dashview/internal/rendering"
	"github.com/nfrund/dashview/web/src/templates/layouts"
)

// CredentialsFunc resolves the token provider for a request.
type CredentialsFunc func(c echo.Context) credentials.Provider

// SessionCredentials reads the token from the named cookie session.
func SessionCredentials(sessionName string) CredentialsFunc {
	return func(c echo.Context) credentials.Provider {
		return credentials.FromStore(credentials.NewSessionStore(c, sessionName))
	}
}

// HandlerDeps holds what a Handler needs. Publisher may be nil.
type HandlerDeps struct {
	Fetcher     dash.Fetcher
	Credentials CredentialsFunc
	Renderer    rendering.Renderer
	Publisher   pubsub.Publisher
	// PagePath is where the page is mounted; the fragment lives under it.
	PagePath string
}

// Handler serves the dashboard page and its payload fragment.
type Handler struct {
	fetcher     dash.Fetcher
	credentials CredentialsFunc
	renderer    rendering.Renderer
	publisher   pubsub.Publisher
	pagePath    string
	payloadPath string
}

// NewHandler creates a Handler.
func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		fetcher:     deps.Fetcher,
		credentials: deps.Credentials,
		renderer:    deps.Renderer,
		publisher:   deps.Publisher,
		pagePath:    deps.PagePath,
		payloadPath: deps.PagePath + "/payload",
	}
}

// Page renders the dashboard in its unloaded state. It performs no fetch.
func (h *Handler) Page(c echo.Context) error {
	page := layouts.Base("Dashboard", h.pagePath, layouts.Node(view.Page(h.payloadPath)))
	return h.renderer.RenderPage(c, http.StatusOK, page)
}

// Payload mounts a view for this request, waits for its single fetch to
// settle and renders the result. A client that goes away unmounts the view.
func (h *Handler) Payload(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	opts := []dash.ViewOption{dash.WithLogger(logger)}
	if h.publisher != nil {
		opts = append(opts, dash.WithSettleHook(publishSettlement(h.publisher, logger)))
	}

	v := dash.NewView(h.fetcher, h.credentials(c), opts...)
	v.Mount(ctx)
	defer v.Unmount()

	select {
	case <-v.Done():
	case <-ctx.Done():
		logger.Debug("client left before the dashboard settled", "view_id", v.ID())
		return nil
	}

	// Failures are rendered with 200 so htmx swaps the notice in.
	return h.renderer.RenderPage(c, http.StatusOK, view.Payload(v.Snapshot()))
}
