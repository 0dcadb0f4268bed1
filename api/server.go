/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery for the read endpoints (the webhook has
                 its own recovery boundary that answers 200)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Lets a browser dashboard poll / and /sheet-status

ROUTES:
  POST /telegram/webhook   Inbound updates
  GET  /                   Liveness probe
  GET  /sheet-status       Row-store debug view

SECURITY NOTE:
  The webhook authorizes by sender ID inside the handler; the read
  endpoints are public and expose no secrets beyond row counts and a
  three-row sample.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Post("/telegram/webhook", h.TelegramWebhook)
	r.Get("/", h.HealthCheck)
	r.Get("/sheet-status", h.SheetStatus)

	return r
}
