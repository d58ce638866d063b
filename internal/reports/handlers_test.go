package reports

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SafeTrails/ST-Backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecordStore struct {
	selectFn func(ctx context.Context, q store.Query) ([]store.Row, error)
	inserts  []store.Row
}

func (f *fakeRecordStore) Select(ctx context.Context, q store.Query) ([]store.Row, error) {
	if f.selectFn == nil {
		return nil, nil
	}
	return f.selectFn(ctx, q)
}

func (f *fakeRecordStore) Insert(ctx context.Context, table string, row store.Row) (store.Row, error) {
	f.inserts = append(f.inserts, row)
	return row, nil
}

func (f *fakeRecordStore) Update(ctx context.Context, table string, filter store.Filter, patch store.Row, returning []string) (store.Row, error) {
	return nil, store.ErrNotFound
}

func postReport(h *Handler, body, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("X-User-Role", role)
	}
	rec := httptest.NewRecorder()
	SetupRoutes(h).ServeHTTP(rec, req)
	return rec
}

func TestCreate_RequiresPoliceRole(t *testing.T) {
	fake := &fakeRecordStore{}
	h := NewHandler(fake)

	rec := postReport(h, `{"areaName": "MG Marg", "description": "landslide"}`, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = postReport(h, `{"areaName": "MG Marg", "description": "landslide"}`, "tourist")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Empty(t, fake.inserts)
}

func TestCreate_ValidationFailureWritesNothing(t *testing.T) {
	fake := &fakeRecordStore{}
	h := NewHandler(fake)

	rec := postReport(h, `{"description": "landslide"}`, "police")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, fake.inserts)
}

func TestCreate_Success(t *testing.T) {
	fake := &fakeRecordStore{}
	h := NewHandler(fake)

	rec := postReport(h, `{
		"areaName": "MG Marg",
		"description": "landslide risk",
		"latitude": 27.33,
		"longitude": 88.61,
		"reporterName": "Insp. Bhutia",
		"radius_km": 2.5,
		"status_color": "red"
	}`, "police")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, fake.inserts, 1)

	row := fake.inserts[0]
	assert.NotEmpty(t, row.String("id"))
	assert.Equal(t, "MG Marg", row.String("area_name"))
	require.NotNil(t, row["radius_km"])
	assert.Equal(t, 2.5, *row["radius_km"].(*float64))
}

func TestCreate_RadiusAcceptsNumericString(t *testing.T) {
	fake := &fakeRecordStore{}
	h := NewHandler(fake)

	rec := postReport(h, `{"areaName": "Lachung", "description": "flood", "radius_km": "3.5"}`, "police")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	radius := fake.inserts[0]["radius_km"].(*float64)
	require.NotNil(t, radius)
	assert.Equal(t, 3.5, *radius)
}

func TestCreate_RadiusUnparseableBecomesNull(t *testing.T) {
	fake := &fakeRecordStore{}
	h := NewHandler(fake)

	rec := postReport(h, `{"areaName": "Lachung", "description": "flood", "radius_km": "wide"}`, "police")

	require.Equal(t, http.StatusCreated, rec.Code)
	radius := fake.inserts[0]["radius_km"].(*float64)
	assert.Nil(t, radius)
}

func TestList_ReturnsMostRecentHundred(t *testing.T) {
	fake := &fakeRecordStore{
		selectFn: func(ctx context.Context, q store.Query) ([]store.Row, error) {
			assert.Equal(t, 100, q.Limit)
			assert.Equal(t, "created_at", q.OrderBy)
			assert.True(t, q.Descending)
			return []store.Row{{"id": "r1"}}, nil
		},
	}
	h := NewHandler(fake)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	SetupRoutes(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Reports []store.Row `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Reports, 1)
}

func TestList_EmptyIsAnArray(t *testing.T) {
	h := NewHandler(&fakeRecordStore{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	SetupRoutes(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reports":[]`)
}
