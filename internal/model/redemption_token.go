package model

import "time"

// RedemptionToken is a single-use reward credit. Only the SHA-256 hash
// of the issued secret is stored; the plaintext is returned once at
// issuance and is never retrievable again. RedeemedBy/RedeemedAt are
// set at most once, by the transaction that also credits the points.
type RedemptionToken struct {
	ID            int64   `gorm:"primaryKey;autoIncrement"`
	ContentHash   string  `gorm:"uniqueIndex;size:64;not null"`
	PointsAwarded int64   `gorm:"not null"`
	IssuedBy      int64   `gorm:"index;not null"`
	RedeemedBy    *int64  `gorm:"index"`
	RedeemedAt    *time.Time
	CreatedAt     time.Time `gorm:"not null"`
}
