package store

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"station-telemetry-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	EnsureStation(ctx context.Context, stationID, location string) error
	IngestReadings(ctx context.Context, stationID, location string, readings []Reading) error
	ListStationIDs(ctx context.Context) ([]string, error)
	HasStationAccess(ctx context.Context, userID int64, stationID string) (bool, error)
	QueryMeasurements(ctx context.Context, stationID, measurementType string, start, end time.Time) ([]Point, error)
	GetUser(ctx context.Context, userID int64) (*model.User, error)
	IssueToken(ctx context.Context, issuedBy, points int64) (string, error)
	RedeemToken(ctx context.Context, userID int64, secret string) (int64, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// EnsureStation registers a station on first sighting. The insert is
// conflict-ignore on the station id, so a later call with a different
// location leaves the recorded one untouched and two racing calls for
// an unseen id cannot produce two rows.
func (s *gormStore) EnsureStation(ctx context.Context, stationID, location string) error {
	return ensureStation(s.db.WithContext(ctx), stationID, location)
}

func ensureStation(tx *gorm.DB, stationID, location string) error {
	station := model.Station{StationID: stationID, Location: location}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "station_id"}},
		DoNothing: true,
	}).Create(&station).Error; err != nil {
		return fmt.Errorf("failed to ensure station %q: %w", stationID, err)
	}
	return nil
}

// IngestReadings registers the station and appends all readings in one
// transaction. Either the station row exists and every reading is
// durable, or nothing is.
func (s *gormStore) IngestReadings(ctx context.Context, stationID, location string, readings []Reading) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureStation(tx, stationID, location); err != nil {
			return err
		}

		if len(readings) == 0 {
			return nil
		}

		measurements := make([]model.Measurement, len(readings))
		for i, r := range readings {
			measurements[i] = model.Measurement{
				StationID:       stationID,
				MeasurementType: r.Type,
				Value:           r.Value,
				RecordedAt:      r.RecordedAt,
			}
		}
		if err := tx.Create(&measurements).Error; err != nil {
			return fmt.Errorf("failed to append measurements for station %q: %w", stationID, err)
		}
		return nil
	})
}

// ListStationIDs returns the ids of all known stations.
func (s *gormStore) ListStationIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0)
	if err := s.db.WithContext(ctx).
		Model(&model.Station{}).
		Order("station_id").
		Pluck("station_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list stations: %w", err)
	}
	return ids, nil
}

// HasStationAccess reports whether a grant row exists for the pair.
// Absence is not an error; it simply yields false.
func (s *gormStore) HasStationAccess(ctx context.Context, userID int64, stationID string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&model.UserStationAccess{}).
		Where("user_id = ? AND station_id = ?", userID, stationID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check station access: %w", err)
	}
	return count > 0, nil
}

// QueryMeasurements returns points for the station/type whose
// recorded_at lies in the closed interval [start, end], ascending by
// recorded_at. An empty window yields an empty, non-nil slice.
func (s *gormStore) QueryMeasurements(ctx context.Context, stationID, measurementType string, start, end time.Time) ([]Point, error) {
	var measurements []model.Measurement
	if err := s.db.WithContext(ctx).
		Where("station_id = ? AND measurement_type = ? AND recorded_at BETWEEN ? AND ?",
			stationID, measurementType, start, end).
		Order("recorded_at ASC").
		Find(&measurements).Error; err != nil {
		return nil, fmt.Errorf("failed to query measurements: %w", err)
	}

	points := make([]Point, len(measurements))
	for i, m := range measurements {
		points[i] = Point{X: m.RecordedAt.Unix(), Y: m.Value}
	}
	return points, nil
}

// GetUser returns the user row backing the given id.
func (s *gormStore) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	return &user, nil
}

// IssueToken creates an unredeemed token worth the given points and
// returns the plaintext secret. Only the hash is stored.
func (s *gormStore) IssueToken(ctx context.Context, issuedBy, points int64) (string, error) {
	secret, err := newTokenSecret()
	if err != nil {
		return "", fmt.Errorf("failed to generate token secret: %w", err)
	}

	token := model.RedemptionToken{
		ContentHash:   hashSecret(secret),
		PointsAwarded: points,
		IssuedBy:      issuedBy,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var issuer model.User
		if err := tx.Select("id").First(&issuer, issuedBy).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to verify issuer %d: %w", issuedBy, err)
		}
		if err := tx.Create(&token).Error; err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return secret, nil
}

// RedeemToken transitions the token matching the secret from
// unredeemed to redeemed and credits its points to the user, as one
// transaction. The unredeemed->redeemed flip is a conditional update
// guarded on redeemed_by IS NULL with the affected row count checked,
// so of any number of concurrent attempts exactly one can win; the
// rest see ErrInvalidToken and no points move.
func (s *gormStore) RedeemToken(ctx context.Context, userID int64, secret string) (int64, error) {
	contentHash := hashSecret(secret)

	var awarded int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var token model.RedemptionToken
		if err := tx.Where("content_hash = ? AND redeemed_by IS NULL", contentHash).
			First(&token).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidToken
			}
			return fmt.Errorf("failed to look up token: %w", err)
		}

		res := tx.Model(&model.RedemptionToken{}).
			Where("id = ? AND redeemed_by IS NULL", token.ID).
			Updates(map[string]any{
				"redeemed_by": userID,
				"redeemed_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to mark token redeemed: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost the race to a concurrent redemption.
			return ErrInvalidToken
		}

		credit := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("points", gorm.Expr("points + ?", token.PointsAwarded))
		if credit.Error != nil {
			return fmt.Errorf("failed to credit points to user %d: %w", userID, credit.Error)
		}
		if credit.RowsAffected == 0 {
			return ErrUserNotFound
		}

		awarded = token.PointsAwarded
		return nil
	})
	if err != nil {
		return 0, err
	}
	return awarded, nil
}

// newTokenSecret returns a 32-byte URL-safe random secret.
func newTokenSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
