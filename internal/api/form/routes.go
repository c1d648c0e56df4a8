package form

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers form routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/generate-schema", h.GenerateSchema)

	r.Route("/forms/{form_id}", func(r chi.Router) {
		r.Get("/", h.GetForm)
		r.Get("/export", h.ExportForm)
	})
}
