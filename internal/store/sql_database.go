// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/news-site/internal/config"
	"github.com/MKhiriev/news-site/internal/logger"
	"github.com/MKhiriev/news-site/migrations"
)

const (
	maxRetries     = 3
	retryBaseDelay = 50 * time.Millisecond
)

// DB wraps a *sql.DB opened for one of the supported engines together with
// the engine-specific bits the repositories need: the SQL placeholder format
// and the error classifier deciding which failures are retried.
type DB struct {
	*sql.DB
	engine             string
	placeholder        sq.PlaceholderFormat
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB opens the database selected by cfg.Engine.
func NewDB(ctx context.Context, cfg config.Database, log *logger.Logger) (*DB, error) {
	switch cfg.Engine {
	case config.EngineSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	case config.EnginePostgres:
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEngine, cfg.Engine)
	}
}

// Engine returns the engine name the connection was opened with.
func (db *DB) Engine() string {
	return db.engine
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, gooseDialect(db.engine), db.logger)
}

func (db *DB) builder() sq.StatementBuilderType {
	return statementBuilder(db.placeholder)
}

// withRetry runs fn and repeats it with exponential backoff while the
// classifier reports the returned error as retryable.
func (db *DB) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(retryBaseDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
			if db.logger != nil {
				db.logger.Warn().Err(err).Str("func", "DB.withRetry").Msg("retryable database error")
			}
			return retry.RetryableError(err)
		}
		return err
	})
}

func gooseDialect(engine string) string {
	if engine == config.EnginePostgres {
		return "postgres"
	}
	return "sqlite3"
}
