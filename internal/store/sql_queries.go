package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const sessionsTable = "sessions"

var sessionColumns = []string{"session_key", "session_data", "expire_date"}

const upsertSessionSuffix = `ON CONFLICT (session_key) DO UPDATE
		SET session_data = excluded.session_data, expire_date = excluded.expire_date`

func statementBuilder(ph sq.PlaceholderFormat) sq.StatementBuilderType {
	if ph == nil {
		ph = sq.Question
	}
	return sq.StatementBuilder.PlaceholderFormat(ph)
}

// buildGetSessionQuery selects the session stored under key unless it has
// expired at now.
func buildGetSessionQuery(b sq.StatementBuilderType, key string, now time.Time) (string, []any, error) {
	query, args, err := b.
		Select(sessionColumns...).
		From(sessionsTable).
		Where(sq.Eq{"session_key": key}).
		Where(sq.Gt{"expire_date": now}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildSaveSessionQuery inserts a session or overwrites the data and expiry
// of an existing one.
func buildSaveSessionQuery(b sq.StatementBuilderType, key, data string, expireDate time.Time) (string, []any, error) {
	query, args, err := b.
		Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(key, data, expireDate).
		Suffix(upsertSessionSuffix).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteSessionQuery(b sq.StatementBuilderType, key string) (string, []any, error) {
	query, args, err := b.
		Delete(sessionsTable).
		Where(sq.Eq{"session_key": key}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteExpiredSessionsQuery(b sq.StatementBuilderType, now time.Time) (string, []any, error) {
	query, args, err := b.
		Delete(sessionsTable).
		Where(sq.LtOrEq{"expire_date": now}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
