package weather

import (
	"errors"
	"net/http"

	"github.com/SafeTrails/ST-Backend/internal/httpx"
)

// Handler serves the weather lookup endpoints.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// GetByCoords handles GET /weather/coords?lat=&lon=.
func (h *Handler) GetByCoords(w http.ResponseWriter, r *http.Request) {
	lat := r.URL.Query().Get("lat")
	lon := r.URL.Query().Get("lon")
	if lat == "" || lon == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Coordinates required")
		return
	}

	snap, err := h.client.Fetch(r.Context(), lat, lon)
	if err != nil {
		var upErr *UpstreamError
		if errors.As(err, &upErr) {
			httpx.WriteErrorDetails(w, upErr.Status, "Error fetching weather", upErr.Details)
			return
		}
		httpx.WriteErrorDetails(w, http.StatusInternalServerError, "Error fetching weather", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"weather": snap})
}
