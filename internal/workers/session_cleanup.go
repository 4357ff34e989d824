// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/news-site/internal/logger"
	"github.com/MKhiriev/news-site/internal/service"
)

const defaultCleanupInterval = time.Hour

// SessionCleanupWorker periodically deletes expired sessions.
type SessionCleanupWorker struct {
	sessions service.SessionService
	interval time.Duration
	logger   *logger.Logger
}

func NewSessionCleanupWorker(sessions service.SessionService, interval time.Duration, logger *logger.Logger) *SessionCleanupWorker {
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	return &SessionCleanupWorker{
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

func (w *SessionCleanupWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Msg("session cleanup worker started")
	for {
		select {
		case <-ticker.C:
			w.cleanup(ctx)
		case <-ctx.Done():
			w.logger.Info().Msg("session cleanup worker stopped")
			return
		}
	}
}

func (w *SessionCleanupWorker) cleanup(ctx context.Context) {
	deleted, err := w.sessions.CleanupExpired(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("error deleting expired sessions")
		return
	}
	if deleted > 0 {
		w.logger.Info().Int64("deleted", deleted).Msg("expired sessions deleted")
	}
}
