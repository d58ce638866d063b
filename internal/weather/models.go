package weather

// Snapshot is the normalized response shape shared by both providers.
// It is built per request and never persisted.
type Snapshot struct {
	Current Current `json:"current"`
	Daily   []Day   `json:"daily"`
}

// Current describes present conditions. Temperature and humidity are
// pointers so an upstream null survives into the response.
type Current struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	Condition   string   `json:"condition"`
}

// Day is one entry of the multi-day forecast.
type Day struct {
	Date                string   `json:"date"`
	MaxTemp             *float64 `json:"maxTemp"`
	MinTemp             *float64 `json:"minTemp"`
	WeatherCode         *int     `json:"weatherCode"`
	PrecipitationChance *float64 `json:"precipitationChance"`
}
