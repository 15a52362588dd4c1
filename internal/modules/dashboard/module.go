package dashboard

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"

	dash "github.com/nfrund/dashview/internal/dashboard"
	"github.com/nfrund/dashview/internal/middleware"
	"github.com/nfrund/dashview/internal/module"
	"github.com/nfrund/dashview/internal/registry"
)

// Dependencies holds the services the dashboard module owns. Shared core
// services (renderer, event bus, configuration) come from the registry at Boot.
type Dependencies struct {
	Fetcher dash.Fetcher
	// Credentials overrides the session-backed token lookup.
	Credentials CredentialsFunc
}

// Module implements module.Module for the dashboard.
type Module struct {
	module.BaseModule
	deps    Dependencies
	handler *Handler
}

// New creates the dashboard module.
func New(deps Dependencies) *Module {
	return &Module{deps: deps}
}

// Name returns the module's identifier and route prefix.
func (m *Module) Name() string {
	return "dashboard"
}

// Register publishes the dashboard fetcher for other modules.
func (m *Module) Register(reg *registry.Registry) error {
	registry.Set(reg, registry.DashboardFetcherKey, m.deps.Fetcher)
	return nil
}

// Boot mounts the page and fragment routes and starts logging fetch events.
// The renderer is required; the event bus is optional.
func (m *Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Info("Booting dashboard module")

	renderer := registry.MustGet(reg, registry.RendererKey)
	publisher, _ := registry.Get(reg, registry.PublisherKey)

	creds := m.deps.Credentials
	if creds == nil {
		// Token lives in the same cookie session the server middleware manages.
		creds = SessionCredentials(reg.Config().SessionName)
	}

	m.handler = NewHandler(HandlerDeps{
		Fetcher:     m.deps.Fetcher,
		Credentials: creds,
		Renderer:    renderer,
		Publisher:   publisher,
		PagePath:    "/" + m.Name(),
	})
	g.GET("", m.handler.Page)
	g.GET("/payload", m.handler.Payload, middleware.RateLimiter())

	if subscriber, ok := registry.Get(reg, registry.SubscriberKey); ok {
		if err := FetchSettled.Subscribe(ctx, subscriber, logFetchEvent); err != nil {
			return err
		}
	}
	return nil
}
