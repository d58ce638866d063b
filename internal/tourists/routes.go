package tourists

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Get("/", h.List)
	// The passport route must be registered before the id route.
	r.Get("/passport/{documentNo}", h.GetByPassport)
	r.Get("/{id}", h.GetByID)
	r.Post("/verify", h.Verify)

	return r
}
