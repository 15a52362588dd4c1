package server

import (
	"github.com/nfrund/dashview/internal/handlers"
)

// RegisterRoutes sets up the routes that do not belong to a module.
func (s *Server) RegisterRoutes() {
	s.E.GET("/", handlers.HomeGet)
	s.E.GET("/login", handlers.LoginGet)
	s.E.GET("/health", handlers.HealthGet)
}
