package model

import "time"

// UserStationAccess grants a user query access to one station's data.
// Existence of a row is the sole authorization signal; rows are
// provisioned by an external administrative process.
type UserStationAccess struct {
	UserID    int64  `gorm:"primaryKey;autoIncrement:false"`
	StationID string `gorm:"primaryKey;size:128"`
	CreatedAt time.Time
}
