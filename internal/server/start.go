package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// Start runs the HTTP server until an interrupt or terminate signal, then
// shuts everything down.
func (s *Server) Start() {
	// Run the server in a goroutine so that it doesn't block.
	go func() {
		slog.Info("Starting server", "addr", s.Cfg.ServerAddr, "dashboard_api", s.Cfg.DashboardURL)
		if err := s.E.Start(s.Cfg.ServerAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server stopped unexpectedly", "error", err)
			s.E.Logger.Fatal(err)
		}
	}()

	// Block until we receive a shutdown signal.
	waitForShutdown()

	// Give in-flight requests (and dashboard fetches) up to 10 seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

// Shutdown stops modules, the HTTP server and the event bus, in that order.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	for _, m := range s.modules {
		if err := m.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if s.cancel != nil {
		s.cancel()
	}
	if err := s.E.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
