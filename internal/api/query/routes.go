package query

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers query routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/v1", func(r chi.Router) {
		r.Post("/query", h.Query)
		r.Post("/chat", h.Chat)
	})
}
