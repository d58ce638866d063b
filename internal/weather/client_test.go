package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SafeTrails/ST-Backend/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fallbackPayload = `{
	"current": {"temperature_2m": 30, "relative_humidity_2m": 60, "weather_code": 3},
	"daily": {
		"time": ["2026-08-30","2026-08-31","2026-09-01","2026-09-02","2026-09-03","2026-09-04","2026-09-05"],
		"temperature_2m_max": [28,27,26,25,24,23,22],
		"temperature_2m_min": [18,17,16,15,14,13,12],
		"weather_code": [3,3,2,1,0,61,63],
		"precipitation_probability_max": [10,20,30,40,50,60,70]
	}
}`

func testClient(apiKey, primaryURL, fallbackURL string) *Client {
	return &Client{
		apiKey:      apiKey,
		primaryURL:  primaryURL,
		fallbackURL: fallbackURL,
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		metrics:     observability.NewMetricsForTesting(),
	}
}

func jsonServer(t *testing.T, status int, payload string, hits *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			*hits++
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(payload))
	}))
}

func TestFetch_FallbackMapping(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, fallbackPayload, nil)
	defer srv.Close()

	c := testClient("", "http://primary.invalid", srv.URL)
	snap, err := c.Fetch(context.Background(), "12.9", "77.6")
	require.NoError(t, err)

	require.NotNil(t, snap.Current.Temperature)
	require.NotNil(t, snap.Current.Humidity)
	assert.Equal(t, 30.0, *snap.Current.Temperature)
	assert.Equal(t, 60.0, *snap.Current.Humidity)
	assert.Equal(t, "3", snap.Current.Condition)

	require.Len(t, snap.Daily, 7)
	assert.Equal(t, "2026-08-30", snap.Daily[0].Date)
	require.NotNil(t, snap.Daily[0].PrecipitationChance)
	assert.Equal(t, 10.0, *snap.Daily[0].PrecipitationChance)
	require.NotNil(t, snap.Daily[6].WeatherCode)
	assert.Equal(t, 63, *snap.Daily[6].WeatherCode)
}

func TestFetch_FallbackSendsCoordinates(t *testing.T) {
	var gotLat, gotLon, gotDays string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLat = r.URL.Query().Get("latitude")
		gotLon = r.URL.Query().Get("longitude")
		gotDays = r.URL.Query().Get("forecast_days")
		w.Write([]byte(fallbackPayload))
	}))
	defer srv.Close()

	c := testClient("", "", srv.URL)
	_, err := c.Fetch(context.Background(), "12.9", "77.6")
	require.NoError(t, err)
	assert.Equal(t, "12.9", gotLat)
	assert.Equal(t, "77.6", gotLon)
	assert.Equal(t, "7", gotDays)
}

func TestFetch_PartialPrimaryFallsBack(t *testing.T) {
	var primaryHits, fallbackHits int
	primary := jsonServer(t, http.StatusOK,
		`{"current": {"temperature": 25, "humidity": null, "weather_code": 1}}`, &primaryHits)
	defer primary.Close()
	fallback := jsonServer(t, http.StatusOK, fallbackPayload, &fallbackHits)
	defer fallback.Close()

	c := testClient("test-key", primary.URL, fallback.URL)
	snap, err := c.Fetch(context.Background(), "12.9", "77.6")
	require.NoError(t, err)

	assert.Equal(t, 1, primaryHits)
	assert.Equal(t, 1, fallbackHits)
	// A partially-null primary reading must not leak into the response.
	assert.Equal(t, 30.0, *snap.Current.Temperature)
	assert.Equal(t, 60.0, *snap.Current.Humidity)
}

func TestFetch_CompletePrimaryWins(t *testing.T) {
	var fallbackHits int
	primary := jsonServer(t, http.StatusOK, `{
		"current": {"temperature": 25, "humidity": 80, "weather_code": 1},
		"daily": {
			"time": ["2026-08-30"],
			"temperature_max": [28],
			"temperature_min": [18],
			"weather_code": [1]
		}
	}`, nil)
	defer primary.Close()
	fallback := jsonServer(t, http.StatusOK, fallbackPayload, &fallbackHits)
	defer fallback.Close()

	c := testClient("test-key", primary.URL, fallback.URL)
	snap, err := c.Fetch(context.Background(), "12.9", "77.6")
	require.NoError(t, err)

	assert.Equal(t, 0, fallbackHits)
	assert.Equal(t, 25.0, *snap.Current.Temperature)
	assert.Equal(t, "1", snap.Current.Condition)
	require.Len(t, snap.Daily, 1)
	assert.Nil(t, snap.Daily[0].PrecipitationChance)
}

func TestFetch_PrimaryUsesHourlySample(t *testing.T) {
	primary := jsonServer(t, http.StatusOK, `{
		"hourly": {"temperature": [22], "humidity": [70], "weather_code": [2]}
	}`, nil)
	defer primary.Close()

	c := testClient("test-key", primary.URL, "http://fallback.invalid")
	snap, err := c.Fetch(context.Background(), "12.9", "77.6")
	require.NoError(t, err)

	assert.Equal(t, 22.0, *snap.Current.Temperature)
	assert.Equal(t, 70.0, *snap.Current.Humidity)
	assert.Equal(t, "2", snap.Current.Condition)
}

func TestFetch_FallbackFailurePropagatesStatus(t *testing.T) {
	srv := jsonServer(t, http.StatusBadGateway, `{"reason": "unreachable"}`, nil)
	defer srv.Close()

	c := testClient("", "", srv.URL)
	_, err := c.Fetch(context.Background(), "12.9", "77.6")
	require.Error(t, err)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusBadGateway, upErr.Status)
	assert.Contains(t, upErr.Details, "unreachable")
}

func TestFormatCode(t *testing.T) {
	three := 3.0
	frac := 2.5
	assert.Equal(t, "3", formatCode(&three))
	assert.Equal(t, "2.5", formatCode(&frac))
	assert.Equal(t, "Unknown", formatCode(nil))
}
