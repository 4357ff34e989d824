package service

import (
	"fmt"

	"github.com/MKhiriev/news-site/internal/config"
	"github.com/MKhiriev/news-site/internal/logger"
	"github.com/MKhiriev/news-site/internal/store"
	"github.com/MKhiriev/news-site/internal/validators"
	"github.com/MKhiriev/news-site/models"
)

type Services struct {
	// SessionService is nil when the sessions module is not installed.
	SessionService SessionService
	AppInfoService AppInfoService

	// PasswordPolicy enforces the configured password validators.
	PasswordPolicy *validators.PasswordPolicy
}

func NewServices(storages *store.Storages, cfg *config.Settings, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	services := &Services{}

	if cfg.HasModule(config.ModuleSessions) {
		if storages == nil || storages.SessionRepository == nil {
			return nil, ErrNoSessionStorage
		}
		sessionService, err := NewSessionService(storages.SessionRepository, cfg.SecretKey, cfg.Session, logger)
		if err != nil {
			return nil, fmt.Errorf("error creating session service: %w", err)
		}
		services.SessionService = sessionService
	}

	appInfoService, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}
	services.AppInfoService = appInfoService

	policy, err := validators.NewPasswordPolicy(cfg.PasswordValidators)
	if err != nil {
		return nil, fmt.Errorf("error creating password policy: %w", err)
	}
	services.PasswordPolicy = policy

	return services, nil
}
