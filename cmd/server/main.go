package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nfrund/dashview/internal/app"
	"github.com/nfrund/dashview/internal/config"
	"github.com/nfrund/dashview/internal/logging"
	"github.com/nfrund/dashview/internal/server"
)

func main() {
	cfg := config.New()
	logging.New(cfg.LogFormat, cfg.LogLevel)

	deps, err := app.Resolve(app.NewContainer(cfg))
	if err != nil {
		slog.Error("Failed to build dependencies", "error", err)
		os.Exit(1)
	}

	s, err := server.New(server.Dependencies{
		Config:    cfg,
		Renderer:  deps.Renderer,
		Publisher: deps.Publisher,
	})
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	// Modules find the renderer and event bus in the registry.
	if err := s.InitModules(context.Background(), app.NewModules(deps), app.NewRegistry(deps)); err != nil {
		slog.Error("Failed to initialize modules", "error", err)
		os.Exit(1)
	}
	s.RegisterRoutes()

	s.Start()
}
