package reports

import (
	"net/http"

	"github.com/SafeTrails/ST-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.With(middleware.RequireRole("police")).Post("/", h.Create)
	r.Get("/", h.List)

	return r
}
