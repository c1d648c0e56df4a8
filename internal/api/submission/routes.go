package submission

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers submission routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/save-response", h.SaveResponse)
}
