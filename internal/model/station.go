package model

import "time"

// Station represents a field station that reports measurements. The id
// is assigned by the station itself; the row is created on first
// sighting and its location is never overwritten afterwards.
type Station struct {
	StationID string    `gorm:"primaryKey;size:128"`
	Location  string    `gorm:"size:256"`
	CreatedAt time.Time `gorm:"not null"`
}
