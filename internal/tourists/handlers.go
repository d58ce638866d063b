package tourists

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/SafeTrails/ST-Backend/internal/httpx"
	"github.com/SafeTrails/ST-Backend/internal/store"
	"github.com/SafeTrails/ST-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// maxUploadBytes caps the in-memory portion of a registration form.
const maxUploadBytes = 10 << 20

// Handler serves the tourist registration and lookup endpoints.
type Handler struct {
	Records  store.RecordStore
	Blobs    store.BlobStore
	resolver *Resolver
}

func NewHandler(records store.RecordStore, blobs store.BlobStore) *Handler {
	return &Handler{
		Records:  records,
		Blobs:    blobs,
		resolver: &Resolver{Records: records},
	}
}

// Register handles POST /api/tourists/register. The body is multipart:
// a "data" field carrying the JSON document plus optional "photo" and
// "documentPhoto" files.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.WriteErrorDetails(w, http.StatusBadRequest, "Invalid multipart form", err.Error())
		return
	}

	raw := r.FormValue("data")
	if raw == "" {
		raw = "{}"
	}
	var in TouristInput
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		httpx.WriteErrorDetails(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}
	if errs := in.Validate(); !errs.Ok() {
		httpx.WriteErrorDetails(w, http.StatusBadRequest, "Validation failed", errs.Details())
		return
	}

	ctx := r.Context()

	// Duplicate email check before any upload or insert.
	existing, err := h.Records.Select(ctx, store.Query{
		Table:   touristTable,
		Columns: []string{"id"},
		Filter:  store.Filter{"email": in.Email},
		Limit:   1,
	})
	if err != nil {
		httpx.WriteErrorDetails(w, http.StatusInternalServerError, "Database lookup failed", err.Error())
		return
	}
	if len(existing) > 0 {
		httpx.WriteError(w, http.StatusConflict, "A tourist with this email is already registered")
		return
	}

	photoURL, err := h.uploadFile(ctx, r, "photo", "photos")
	if err != nil {
		httpx.WriteErrorDetails(w, http.StatusInternalServerError, "Photo upload failed", err.Error())
		return
	}
	documentPhotoURL, err := h.uploadFile(ctx, r, "documentPhoto", "documents")
	if err != nil {
		httpx.WriteErrorDetails(w, http.StatusInternalServerError, "Document photo upload failed", err.Error())
		return
	}

	contacts, err := store.ToJSONB(in.EmergencyContacts)
	if err != nil {
		httpx.WriteErrorDetails(w, http.StatusInternalServerError, "Unexpected error", err.Error())
		return
	}
	itinerary, err := store.ToJSONB(in.TravelItinerary)
	if err != nil {
		httpx.WriteErrorDetails(w, http.StatusInternalServerError, "Unexpected error", err.Error())
		return
	}

	row := store.Row{
		"id":                utils.GenerateUUID(),
		"created_at":        time.Now().UTC(),
		"fullname":          in.FullName,
		"email":             in.Email,
		"phoneno":           in.PhoneNo,
		"nationality":       in.Nationality,
		"documenttype":      in.DocumentType,
		"documentno":        in.DocumentNo,
		"registrationpoint": in.RegistrationPoint,
		"checkindate":       dateOnly(in.CheckInDate),
		"checkoutdate":      dateOnly(in.CheckOutDate),
		"emergencycontacts": contacts,
		"travelitinerary":   itinerary,
		"verified":          false,
	}
	if photoURL != "" {
		row["photo"] = photoURL
	}
	if documentPhotoURL != "" {
		row["documentphoto"] = documentPhotoURL
	}
	if in.WalletAddress != "" {
		row["wallet_address"] = in.WalletAddress
	}

	created, err := h.Records.Insert(ctx, touristTable, row)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			httpx.WriteError(w, http.StatusConflict, "A tourist with this email is already registered")
			return
		}
		httpx.WriteErrorDetails(w, http.StatusInternalServerError, "Database insert failed", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"tourist": created})
}

// List handles GET /api/tourists.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Records.Select(r.Context(), store.Query{
		Table:      touristTable,
		Columns:    publicColumns,
		OrderBy:    "created_at",
		Descending: true,
	})
	if err != nil {
		httpx.WriteErrorDetails(w, http.StatusInternalServerError, "Failed to fetch tourists", err.Error())
		return
	}
	if rows == nil {
		rows = []store.Row{}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"tourists": rows})
}

// GetByID handles GET /api/tourists/{id}.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rows, err := h.Records.Select(r.Context(), store.Query{
		Table:  touristTable,
		Filter: store.Filter{"id": id},
		Limit:  1,
	})
	if err != nil {
		httpx.WriteErrorDetails(w, http.StatusInternalServerError, "Failed to fetch tourist", err.Error())
		return
	}
	if len(rows) == 0 {
		httpx.WriteError(w, http.StatusNotFound, "Tourist not found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"tourist": rows[0]})
}

// GetByPassport handles GET /api/tourists/passport/{documentNo}.
func (h *Handler) GetByPassport(w http.ResponseWriter, r *http.Request) {
	documentNo := chi.URLParam(r, "documentNo")
	row, err := h.resolver.Resolve(r.Context(), documentNo, publicColumns)
	if err != nil {
		writeResolveError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"tourist": row})
}

// Verify handles POST /api/tourists/verify. A known id short-circuits
// the passport resolution; verifying twice is idempotent.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID         *string `json:"id"`
		DocumentNo string  `json:"documentNo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteErrorDetails(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	ctx := r.Context()
	id := ""
	if body.ID != nil {
		id = *body.ID
	}
	if id == "" {
		if body.DocumentNo == "" {
			httpx.WriteError(w, http.StatusBadRequest, "id or documentNo is required")
			return
		}
		row, err := h.resolver.Resolve(ctx, body.DocumentNo, verifyColumns)
		if err != nil {
			writeResolveError(w, err)
			return
		}
		id = row.String("id")
	}

	updated, err := h.Records.Update(ctx, touristTable,
		store.Filter{"id": id}, store.Row{"verified": true}, verifyColumns)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Tourist not found")
			return
		}
		httpx.WriteErrorDetails(w, http.StatusInternalServerError, "Verification failed", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"tourist": updated})
}

func writeResolveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmptyDocumentNo):
		httpx.WriteError(w, http.StatusBadRequest, "documentNo is required")
	case errors.Is(err, ErrNoMatch):
		httpx.WriteError(w, http.StatusNotFound, "No tourist found for this passport")
	default:
		httpx.WriteErrorDetails(w, http.StatusInternalServerError, "Lookup failed", err.Error())
	}
}

func (h *Handler) uploadFile(ctx context.Context, r *http.Request, field, dir string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	if h.Blobs == nil {
		log.Printf("[tourists] storage not configured, skipping %s upload", field)
		return "", nil
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	path := fmt.Sprintf("%s/%d_%s", dir, time.Now().UnixMilli(), filepath.Base(header.Filename))
	return h.Blobs.Upload(ctx, path, data, contentType)
}

// dateOnly keeps the date portion of an ISO timestamp.
func dateOnly(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
