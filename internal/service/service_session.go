// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/news-site/internal/config"
	"github.com/MKhiriev/news-site/internal/logger"
	"github.com/MKhiriev/news-site/internal/store"
	"github.com/MKhiriev/news-site/internal/utils"
	"github.com/MKhiriev/news-site/models"
)

// keyGenerator produces random session keys.
type keyGenerator interface {
	GenerateKey() string
}

type sessionService struct {
	repo      store.SessionRepository
	secretKey string
	cookieAge time.Duration

	keys keyGenerator
	now  func() time.Time

	logger *logger.Logger
}

// NewSessionService returns a SessionService storing sessions in repo and
// signing cookie values with secretKey.
func NewSessionService(repo store.SessionRepository, secretKey string, cfg config.Session, logger *logger.Logger) (SessionService, error) {
	if secretKey == "" {
		return nil, ErrSecretKeyIsEmpty
	}

	return &sessionService{
		repo:      repo,
		secretKey: secretKey,
		cookieAge: cfg.CookieAge,
		keys:      utils.NewUUIDGenerator(),
		now:       time.Now,
		logger:    logger,
	}, nil
}

func newEmptySession() models.Session {
	return models.Session{Data: map[string]any{}}
}

func (s *sessionService) Load(ctx context.Context, cookie string) (models.Session, error) {
	if cookie == "" {
		return newEmptySession(), nil
	}

	key, ok := utils.Unsign(cookie, s.secretKey)
	if !ok {
		s.logger.Debug().Msg("session cookie has a bad signature")
		return newEmptySession(), nil
	}

	session, err := s.repo.Get(ctx, key, s.now())
	if errors.Is(err, store.ErrSessionNotFound) {
		return newEmptySession(), nil
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrLoadingSession, err)
	}

	return session, nil
}

func (s *sessionService) Save(ctx context.Context, session models.Session) (models.Session, string, error) {
	if session.Key == "" {
		session.Key = s.keys.GenerateKey()
	}
	if session.Data == nil {
		session.Data = map[string]any{}
	}
	session.ExpireDate = s.now().Add(s.cookieAge)

	if err := s.repo.Save(ctx, session); err != nil {
		return models.Session{}, "", fmt.Errorf("%w: %w", ErrSavingSession, err)
	}

	return session, utils.Sign(session.Key, s.secretKey), nil
}

func (s *sessionService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.repo.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: %w", ErrDeletingSession, err)
	}
	return nil
}

func (s *sessionService) CleanupExpired(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCleaningUp, err)
	}
	return deleted, nil
}
