package service

import (
	"context"

	"github.com/MKhiriev/news-site/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SessionService manages visitor sessions bound to signed cookies.
type SessionService interface {
	// Load returns the session referenced by the signed cookie value.
	// An empty, tampered, unknown or expired cookie yields a new empty
	// session with no key.
	Load(ctx context.Context, cookie string) (models.Session, error)

	// Save persists the session, assigning a fresh key to new sessions and
	// extending the expiry by the cookie age. It returns the stored session
	// and the signed cookie value to send to the browser.
	Save(ctx context.Context, session models.Session) (models.Session, string, error)

	// Delete removes the session with the given key.
	Delete(ctx context.Context, key string) error

	// CleanupExpired removes every expired session and returns how many
	// were removed.
	CleanupExpired(ctx context.Context) (int64, error)
}

// AppInfoService exposes build metadata of the running binary.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
