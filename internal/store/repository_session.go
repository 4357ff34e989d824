package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/news-site/internal/logger"
	"github.com/MKhiriev/news-site/models"
)

// sessionRepository is the SQL implementation of [SessionRepository] for
// both SQLite and PostgreSQL. Queries are built with squirrel using the
// placeholder format of the underlying [*DB].
type sessionRepository struct {
	*DB
	logger *logger.Logger
}

// NewSessionRepository constructs a [SessionRepository] backed by db.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *sessionRepository) Get(ctx context.Context, key string, now time.Time) (models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetSessionQuery(r.builder(), key, dbTime(now))
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.Get").Msg("failed to create query")
		return models.Session{}, err
	}

	var (
		session models.Session
		rawData string
	)
	err = r.withRetry(ctx, func(ctx context.Context) error {
		return r.DB.QueryRowContext(ctx, query, args...).Scan(&session.Key, &rawData, &session.ExpireDate)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.Get").
			Str("pg_code", postgresError(err)).
			Msg("failed to scan session row")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = json.Unmarshal([]byte(rawData), &session.Data); err != nil {
		log.Err(err).Str("func", "sessionRepository.Get").Msg("stored session data is not valid json")
		return models.Session{}, fmt.Errorf("%w: %w", ErrDecodingSessionData, err)
	}
	if session.Data == nil {
		session.Data = map[string]any{}
	}

	return session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	data := session.Data
	if data == nil {
		data = map[string]any{}
	}
	rawData, err := json.Marshal(data)
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.Save").Msg("failed to encode session data")
		return fmt.Errorf("%w: %w", ErrEncodingSessionData, err)
	}

	query, args, err := buildSaveSessionQuery(r.builder(), session.Key, string(rawData), dbTime(session.ExpireDate))
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.Save").Msg("failed to create query")
		return err
	}

	var result sql.Result
	err = r.withRetry(ctx, func(ctx context.Context) error {
		var execErr error
		result, execErr = r.DB.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.Save").
			Str("pg_code", postgresError(err)).
			Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrSessionNotSaved
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteSessionQuery(r.builder(), key)
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.Delete").Msg("failed to create query")
		return err
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		_, execErr := r.DB.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.Delete").Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteExpiredSessionsQuery(r.builder(), dbTime(now))
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.DeleteExpired").Msg("failed to create query")
		return 0, err
	}

	var result sql.Result
	err = r.withRetry(ctx, func(ctx context.Context) error {
		var execErr error
		result, execErr = r.DB.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.DeleteExpired").Msg("failed to delete expired sessions")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return deleted, nil
}

// dbTime normalizes timestamps so SQLite's text comparison and Postgres'
// TIMESTAMP column agree.
func dbTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
