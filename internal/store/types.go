package store

import "time"

// Reading is one validated measurement ready to be appended. Wire
// parsing and the skip-invalid policy happen before the store sees it.
type Reading struct {
	Type       string
	Value      float64
	RecordedAt time.Time
}

// Point is the wire-friendly form of a stored measurement: epoch
// seconds on X, the reading on Y.
type Point struct {
	X int64   `json:"x"`
	Y float64 `json:"y"`
}

// MeasurementTypes lists the reading kinds stations report, matching
// the measurement_type enum of the original schema.
var MeasurementTypes = []string{
	"humidity",
	"max_wind",
	"wind_speed",
	"precipitation",
	"pressure",
	"temperature",
	"wind_direction",
	"soil_moisture",
}
