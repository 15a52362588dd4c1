package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nfrund/dashview/internal/config"
	appmiddleware "github.com/nfrund/dashview/internal/middleware"
	"github.com/nfrund/dashview/internal/module"
	"github.com/nfrund/dashview/internal/pubsub"
	"github.com/nfrund/dashview/internal/registry"
	"github.com/nfrund/dashview/internal/rendering"
	"github.com/nfrund/dashview/web"
)

// Dependencies are the services the server needs to be constructed.
type Dependencies struct {
	Config    *config.Config
	Renderer  rendering.Renderer
	Publisher pubsub.Publisher
	// Echo is optional; a new instance is created when nil.
	Echo *echo.Echo
}

// Server holds the HTTP server and the modules mounted on it.
type Server struct {
	E         *echo.Echo
	Cfg       *config.Config
	publisher pubsub.Publisher
	modules   []module.Module
	cancel    context.CancelFunc
}

// New creates a Server with the core middleware stack installed.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if deps.Renderer == nil {
		return nil, errors.New("server: renderer is required")
	}

	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true
	e.Renderer = deps.Renderer

	// Order matters: the request logger reads the ID set by RequestID.
	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.Recover())

	// The cookie session is the browser-side store the dashboard token is read from.
	store := sessions.NewCookieStore([]byte(deps.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	setupErrorHandling(e)

	// Static assets are embedded into the binary.
	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	return &Server{
		E:         e,
		Cfg:       deps.Config,
		publisher: deps.Publisher,
	}, nil
}

// InitModules registers every module with reg, then boots each one on its
// own route group named after the module.
func (s *Server) InitModules(ctx context.Context, modules []module.Module, reg *registry.Registry) error {
	ctx, s.cancel = context.WithCancel(ctx)

	// Phase 1: every module publishes its services before any module boots,
	// so Boot can look up anything in the registry.
	for _, m := range modules {
		if err := m.Register(reg); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}
	// Phase 2: mount routes and start background work.
	for _, m := range modules {
		if err := m.Boot(ctx, s.E.Group("/"+m.Name()), reg); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
		slog.Info("Module booted", "module", m.Name())
	}
	s.modules = modules
	return nil
}
