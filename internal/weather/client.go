package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/SafeTrails/ST-Backend/internal/observability"
)

const (
	defaultPrimaryURL  = "https://weather.googleapis.com/v1/weather:forecast"
	defaultFallbackURL = "https://api.open-meteo.com/v1/forecast"
)

// UpstreamError carries the status code and payload of a failed
// provider call so handlers can propagate them to the client.
type UpstreamError struct {
	Status  int
	Details string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("weather upstream error (status %d): %s", e.Status, e.Details)
}

// Client fetches weather from a keyed primary provider, falling back to
// the keyless Open-Meteo API when the primary is unconfigured, fails,
// or returns incomplete data. No caching, no retries beyond that single
// fallback.
type Client struct {
	apiKey      string
	primaryURL  string
	fallbackURL string
	httpClient  *http.Client
	metrics     *observability.Metrics
}

// NewClient builds a client from GOOGLE_WEATHER_API_KEY (or the legacy
// WEATHER_API_KEY). An empty key disables the primary provider.
func NewClient(m *observability.Metrics) *Client {
	key := os.Getenv("GOOGLE_WEATHER_API_KEY")
	if key == "" {
		key = os.Getenv("WEATHER_API_KEY")
	}
	return &Client{
		apiKey:      key,
		primaryURL:  defaultPrimaryURL,
		fallbackURL: defaultFallbackURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		metrics:     m,
	}
}

// Fetch returns the snapshot for the given coordinates. lat and lon are
// passed through to the providers as the caller supplied them.
func (c *Client) Fetch(ctx context.Context, lat, lon string) (*Snapshot, error) {
	if c.apiKey != "" {
		snap, err := c.fetchPrimary(ctx, lat, lon)
		switch {
		case err != nil:
			c.metrics.WeatherRequests.WithLabelValues("primary", "error").Inc()
			log.Printf("[weather] primary fetch failed: %v", err)
		case snap.Current.Temperature != nil && snap.Current.Humidity != nil:
			c.metrics.WeatherRequests.WithLabelValues("primary", "success").Inc()
			return snap, nil
		default:
			// A partially-null reading is worse than a fallback one.
			c.metrics.WeatherRequests.WithLabelValues("primary", "incomplete").Inc()
		}
	}
	return c.fetchFallback(ctx, lat, lon)
}

type primarySample struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	WeatherCode *float64 `json:"weather_code"`
}

type primarySeries struct {
	Temperature []*float64 `json:"temperature"`
	Humidity    []*float64 `json:"humidity"`
	WeatherCode []*float64 `json:"weather_code"`
}

type primaryDaily struct {
	Time           []string   `json:"time"`
	TemperatureMax []*float64 `json:"temperature_max"`
	TemperatureMin []*float64 `json:"temperature_min"`
	WeatherCode    []*int     `json:"weather_code"`
}

type primaryResponse struct {
	Current  *primarySample `json:"current"`
	Realtime *primarySample `json:"realtime"`
	Hourly   *primarySeries `json:"hourly"`
	Daily    *primaryDaily  `json:"daily"`
}

func (c *Client) fetchPrimary(ctx context.Context, lat, lon string) (*Snapshot, error) {
	params := url.Values{
		"location":      {fmt.Sprintf("POINT(%s %s)", lon, lat)},
		"hourly_fields": {"temperature,humidity,weather_code"},
		"daily_fields":  {"temperature_max,temperature_min,weather_code"},
		"key":           {c.apiKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.primaryURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("primary request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("primary provider status %d: %s", resp.StatusCode, body)
	}

	var pr primaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode primary response: %w", err)
	}

	sample := pr.Current
	if sample == nil {
		sample = pr.Realtime
	}
	if sample == nil {
		sample = &primarySample{}
	}
	hourly := pr.Hourly
	if hourly == nil {
		hourly = &primarySeries{}
	}

	snap := &Snapshot{
		Current: Current{
			Temperature: coalesce(sample.Temperature, hourly.Temperature),
			Humidity:    coalesce(sample.Humidity, hourly.Humidity),
			Condition:   formatCode(coalesce(sample.WeatherCode, hourly.WeatherCode)),
		},
		Daily: []Day{},
	}

	if d := pr.Daily; d != nil {
		for i, date := range d.Time {
			day := Day{Date: date}
			if i < len(d.TemperatureMax) {
				day.MaxTemp = d.TemperatureMax[i]
			}
			if i < len(d.TemperatureMin) {
				day.MinTemp = d.TemperatureMin[i]
			}
			if i < len(d.WeatherCode) {
				day.WeatherCode = d.WeatherCode[i]
			}
			// The primary tier does not report precipitation probability.
			snap.Daily = append(snap.Daily, day)
		}
	}
	return snap, nil
}

type fallbackCurrent struct {
	Temperature *float64 `json:"temperature_2m"`
	Humidity    *float64 `json:"relative_humidity_2m"`
	WeatherCode *float64 `json:"weather_code"`
}

type fallbackDaily struct {
	Time                        []string   `json:"time"`
	TemperatureMax              []*float64 `json:"temperature_2m_max"`
	TemperatureMin              []*float64 `json:"temperature_2m_min"`
	WeatherCode                 []*int     `json:"weather_code"`
	PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
}

type fallbackResponse struct {
	Current *fallbackCurrent `json:"current"`
	Daily   *fallbackDaily   `json:"daily"`
}

func (c *Client) fetchFallback(ctx context.Context, lat, lon string) (*Snapshot, error) {
	params := url.Values{
		"latitude":      {lat},
		"longitude":     {lon},
		"current":       {"temperature_2m,relative_humidity_2m,weather_code"},
		"daily":         {"temperature_2m_max,temperature_2m_min,weather_code,precipitation_probability_max"},
		"forecast_days": {"7"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fallbackURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.WeatherRequests.WithLabelValues("fallback", "error").Inc()
		return nil, &UpstreamError{Status: http.StatusInternalServerError, Details: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.WeatherRequests.WithLabelValues("fallback", "error").Inc()
		return nil, &UpstreamError{Status: resp.StatusCode, Details: string(body)}
	}

	var fr fallbackResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		c.metrics.WeatherRequests.WithLabelValues("fallback", "error").Inc()
		return nil, &UpstreamError{Status: http.StatusInternalServerError, Details: "decode fallback response: " + err.Error()}
	}

	cur := fr.Current
	if cur == nil {
		cur = &fallbackCurrent{}
	}
	snap := &Snapshot{
		Current: Current{
			Temperature: cur.Temperature,
			Humidity:    cur.Humidity,
			Condition:   formatCode(cur.WeatherCode),
		},
		Daily: []Day{},
	}

	if d := fr.Daily; d != nil {
		for i, date := range d.Time {
			day := Day{Date: date}
			if i < len(d.TemperatureMax) {
				day.MaxTemp = d.TemperatureMax[i]
			}
			if i < len(d.TemperatureMin) {
				day.MinTemp = d.TemperatureMin[i]
			}
			if i < len(d.WeatherCode) {
				day.WeatherCode = d.WeatherCode[i]
			}
			if i < len(d.PrecipitationProbabilityMax) {
				day.PrecipitationChance = d.PrecipitationProbabilityMax[i]
			}
			snap.Daily = append(snap.Daily, day)
		}
	}
	c.metrics.WeatherRequests.WithLabelValues("fallback", "success").Inc()
	return snap, nil
}

// coalesce prefers the direct reading and falls back to the first
// sample of the hourly series.
func coalesce(direct *float64, series []*float64) *float64 {
	if direct != nil {
		return direct
	}
	if len(series) > 0 {
		return series[0]
	}
	return nil
}

// formatCode renders a numeric weather code as the condition string,
// "Unknown" when the code is absent.
func formatCode(code *float64) string {
	if code == nil {
		return "Unknown"
	}
	return strconv.FormatFloat(*code, 'f', -1, 64)
}
