package reports

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

const reportTable = "reports"

// Report is a geofenced incident area published by police users.
// Append-mostly; there is no update or delete surface.
type Report struct {
	ID            string    `gorm:"primaryKey;column:id" json:"id"`
	AreaName      string    `gorm:"column:area_name" json:"area_name"`
	Description   string    `gorm:"column:description" json:"description"`
	Latitude      *float64  `gorm:"column:latitude" json:"latitude"`
	Longitude     *float64  `gorm:"column:longitude" json:"longitude"`
	RadiusKM      *float64  `gorm:"column:radius_km" json:"radius_km"`
	StatusColor   *string   `gorm:"column:status_color" json:"status_color"`
	ReporterName  *string   `gorm:"column:reporter_name" json:"reporter_name"`
	ReporterPhone *string   `gorm:"column:reporter_phone" json:"reporter_phone"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Report) TableName() string { return reportTable }

// listColumns is the projection returned by the list endpoint.
var listColumns = []string{
	"id", "area_name", "description", "latitude", "longitude",
	"reporter_name", "reporter_phone", "radius_km", "status_color",
	"created_at",
}

// FlexFloat accepts a JSON number or a numeric string; clients send
// radius_km both ways. Unparseable strings decode to null rather than
// rejecting the whole report.
type FlexFloat struct {
	value *float64
}

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil
		}
		f.value = &v
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.value = &v
	return nil
}

// Ptr returns the parsed value, nil when absent or unparseable.
func (f FlexFloat) Ptr() *float64 { return f.value }
