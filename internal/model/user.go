package model

import "time"

// User is the partial account view this service consumes: the point
// balance plus display fields. Registration and credential storage
// belong to the identity service, not this backend.
type User struct {
	ID        int64  `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;size:128;not null"`
	Email     string `gorm:"size:256"`
	Points    int64  `gorm:"not null;default:0;check:points >= 0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
