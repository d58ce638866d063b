package weather

import (
	"net/http"

	"github.com/SafeTrails/ST-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

func SetupRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	// Keep one noisy client from burning the upstream quota.
	r.Use(middleware.RateLimit(rate.Limit(5), 10))

	r.Get("/coords", h.GetByCoords)

	return r
}
