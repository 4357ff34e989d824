package store

import "github.com/MKhiriev/news-site/internal/logger"

type Storages struct {
	SessionRepository SessionRepository
}

func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		SessionRepository: NewSessionRepository(db, logger),
	}
}
