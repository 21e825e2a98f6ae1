package model

import "time"

// Measurement is one typed, timestamped scalar reading from a station.
// Rows are append-only; duplicates on (station, type, recorded_at) are
// allowed.
type Measurement struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	StationID       string    `gorm:"size:128;not null;index:idx_measurement_series,priority:1"`
	MeasurementType string    `gorm:"size:32;not null;index:idx_measurement_series,priority:2"`
	Value           float64   `gorm:"not null"`
	RecordedAt      time.Time `gorm:"not null;index:idx_measurement_series,priority:3"`

	// Associations
	Station Station `gorm:"foreignKey:StationID;references:StationID;constraint:OnDelete:CASCADE"`
}
