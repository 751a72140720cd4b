package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/makt28/updown/internal/config"
	"github.com/makt28/updown/internal/storage"
)

// NewRouter sets up all routes and returns the http.Handler.
// /api/* and /ws require basic auth when srv.Username is set.
func NewRouter(srv config.ServerConfig, hist *storage.History, hub *Hub, stopCh <-chan struct{}) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	handlers := NewHandlers(hist)
	health := NewHealthHandler(hist)

	// Public routes
	r.Get("/healthz", health.ServeHTTP)

	// Protected routes
	r.Group(func(r chi.Router) {
		if srv.Username != "" {
			limiter := NewAuthRateLimiter(defaultMaxAuthAttempts, defaultLockout, stopCh)
			r.Use(BasicAuth(srv, limiter))
		}

		r.Get("/api/services", handlers.APIServices)
		r.Get("/api/events", handlers.APIEvents)
		if hub != nil {
			r.Get("/ws", hub.HandleConnect)
		}
	})

	return r
}
