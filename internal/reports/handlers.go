package reports

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SafeTrails/ST-Backend/internal/httpx"
	"github.com/SafeTrails/ST-Backend/internal/store"
	"github.com/SafeTrails/ST-Backend/internal/utils"
	"github.com/SafeTrails/ST-Backend/internal/validate"
)

// Handler serves the incident report endpoints.
type Handler struct {
	Records store.RecordStore
}

func NewHandler(records store.RecordStore) *Handler {
	return &Handler{Records: records}
}

type reportInput struct {
	AreaName      string    `json:"areaName"`
	Description   string    `json:"description"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	ReporterName  *string   `json:"reporterName"`
	ReporterPhone *string   `json:"reporterPhone"`
	RadiusKM      FlexFloat `json:"radius_km"`
	StatusColor   *string   `json:"status_color"`
}

// Create handles POST /api/reports. The police role gate is applied as
// route middleware.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in reportInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteErrorDetails(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	errs := validate.Errors{}
	errs.Check("areaName", in.AreaName, validate.Required)
	errs.Check("description", in.Description, validate.Required)
	if !errs.Ok() {
		httpx.WriteErrorDetails(w, http.StatusBadRequest, "areaName and description are required", errs.Details())
		return
	}

	row := store.Row{
		"id":             utils.GenerateUUID(),
		"area_name":      in.AreaName,
		"description":    in.Description,
		"latitude":       in.Latitude,
		"longitude":      in.Longitude,
		"reporter_name":  in.ReporterName,
		"reporter_phone": in.ReporterPhone,
		"radius_km":      in.RadiusKM.Ptr(),
		"status_color":   in.StatusColor,
		"created_at":     time.Now().UTC(),
	}
	created, err := h.Records.Insert(r.Context(), reportTable, row)
	if err != nil {
		httpx.WriteErrorDetails(w, http.StatusInternalServerError, "Failed to save report", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"report": created})
}

// List handles GET /api/reports and returns the most recent 100.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Records.Select(r.Context(), store.Query{
		Table:      reportTable,
		Columns:    listColumns,
		OrderBy:    "created_at",
		Descending: true,
		Limit:      100,
	})
	if err != nil {
		httpx.WriteErrorDetails(w, http.StatusInternalServerError, "Failed to fetch reports", err.Error())
		return
	}
	if rows == nil {
		rows = []store.Row{}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"reports": rows})
}
