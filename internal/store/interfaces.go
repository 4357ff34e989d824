package store

import (
	"context"
	"time"

	"github.com/MKhiriev/news-site/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SessionRepository persists visitor sessions.
type SessionRepository interface {
	// Get returns the session stored under key that is still valid at now.
	// It returns ErrSessionNotFound for unknown or expired keys.
	Get(ctx context.Context, key string, now time.Time) (models.Session, error)
	// Save inserts the session or replaces the stored data and expiry.
	Save(ctx context.Context, session models.Session) error
	// Delete removes the session. Deleting an unknown key is not an error.
	Delete(ctx context.Context, key string) error
	// DeleteExpired removes every session that expired at or before now and
	// returns the number of removed rows.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
