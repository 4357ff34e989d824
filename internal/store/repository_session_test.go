package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/news-site/internal/logger"
	"github.com/MKhiriev/news-site/models"
)

func newTestSessionRepo(t *testing.T, ph sq.PlaceholderFormat, classifier ErrorClassificator) (*sessionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := logger.Nop()
	repo := &sessionRepository{
		DB: &DB{
			DB:                 db,
			placeholder:        ph,
			errorClassificator: classifier,
			logger:             l,
		},
		logger: l,
	}
	return repo, mock
}

const (
	selectSessionSQL = "SELECT session_key, session_data, expire_date FROM sessions WHERE session_key = ? AND expire_date > ?"
	insertSessionSQL = "INSERT INTO sessions (session_key,session_data,expire_date) VALUES (?,?,?) ON CONFLICT (session_key) DO UPDATE"
	deleteSessionSQL = "DELETE FROM sessions WHERE session_key = ?"
	deleteExpiredSQL = "DELETE FROM sessions WHERE expire_date <= ?"
)

func TestSessionRepository_Get_Success(t *testing.T) {
	repo, mock := newTestSessionRepo(t, sq.Question, nil)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	expire := now.Add(time.Hour)

	rows := sqlmock.NewRows([]string{"session_key", "session_data", "expire_date"}).
		AddRow("abc", `{"visits":3}`, expire)
	mock.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
		WithArgs("abc", now).
		WillReturnRows(rows)

	session, err := repo.Get(context.Background(), "abc", now)
	require.NoError(t, err)

	assert.Equal(t, "abc", session.Key)
	assert.Equal(t, expire, session.ExpireDate)
	assert.Equal(t, map[string]any{"visits": float64(3)}, session.Data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Get_NotFound(t *testing.T) {
	repo, mock := newTestSessionRepo(t, sq.Question, nil)

	mock.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing", time.Now())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Get_NullDataBecomesEmptyMap(t *testing.T) {
	repo, mock := newTestSessionRepo(t, sq.Question, nil)

	rows := sqlmock.NewRows([]string{"session_key", "session_data", "expire_date"}).
		AddRow("abc", `null`, time.Now().Add(time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).WillReturnRows(rows)

	session, err := repo.Get(context.Background(), "abc", time.Now())
	require.NoError(t, err)
	assert.NotNil(t, session.Data)
	assert.Empty(t, session.Data)
}

func TestSessionRepository_Get_CorruptData(t *testing.T) {
	repo, mock := newTestSessionRepo(t, sq.Question, nil)

	rows := sqlmock.NewRows([]string{"session_key", "session_data", "expire_date"}).
		AddRow("abc", `{not json`, time.Now().Add(time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).WillReturnRows(rows)

	_, err := repo.Get(context.Background(), "abc", time.Now())
	assert.ErrorIs(t, err, ErrDecodingSessionData)
}

func TestSessionRepository_Get_QueryError(t *testing.T) {
	repo, mock := newTestSessionRepo(t, sq.Question, nil)

	mock.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.Get(context.Background(), "abc", time.Now())
	assert.ErrorIs(t, err, ErrScanningRow)
}

func TestSessionRepository_Save_Success(t *testing.T) {
	repo, mock := newTestSessionRepo(t, sq.Question, nil)
	expire := time.Date(2026, 1, 2, 3, 4, 5, 999, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(insertSessionSQL)).
		WithArgs("abc", `{"user":"jane"}`, expire.Truncate(time.Second)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), models.Session{
		Key:        "abc",
		Data:       map[string]any{"user": "jane"},
		ExpireDate: expire,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Save_NilDataStoredAsObject(t *testing.T) {
	repo, mock := newTestSessionRepo(t, sq.Question, nil)

	mock.ExpectExec(regexp.QuoteMeta(insertSessionSQL)).
		WithArgs("abc", `{}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), models.Session{Key: "abc", ExpireDate: time.Now()})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Save_NoRowsAffected(t *testing.T) {
	repo, mock := newTestSessionRepo(t, sq.Question, nil)

	mock.ExpectExec(regexp.QuoteMeta(insertSessionSQL)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Save(context.Background(), models.Session{Key: "abc", ExpireDate: time.Now()})
	assert.ErrorIs(t, err, ErrSessionNotSaved)
}

func TestSessionRepository_Save_UnencodableData(t *testing.T) {
	repo, mock := newTestSessionRepo(t, sq.Question, nil)

	err := repo.Save(context.Background(), models.Session{
		Key:  "abc",
		Data: map[string]any{"ch": make(chan int)},
	})
	assert.ErrorIs(t, err, ErrEncodingSessionData)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Save_PostgresPlaceholders(t *testing.T) {
	repo, mock := newTestSessionRepo(t, sq.Dollar, nil)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sessions (session_key,session_data,expire_date) VALUES ($1,$2,$3)")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), models.Session{Key: "abc", ExpireDate: time.Now()})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Save_RetriesRetryableErrors(t *testing.T) {
	repo, mock := newTestSessionRepo(t, sq.Dollar, NewPostgresErrorClassifier())

	mock.ExpectExec("INSERT INTO sessions").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	mock.ExpectExec("INSERT INTO sessions").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), models.Session{Key: "abc", ExpireDate: time.Now()})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Save_DoesNotRetryPermanentErrors(t *testing.T) {
	repo, mock := newTestSessionRepo(t, sq.Dollar, NewPostgresErrorClassifier())

	mock.ExpectExec("INSERT INTO sessions").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UndefinedTable})

	err := repo.Save(context.Background(), models.Session{Key: "abc", ExpireDate: time.Now()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)

	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, pgerrcode.UndefinedTable, pgErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Delete(t *testing.T) {
	repo, mock := newTestSessionRepo(t, sq.Question, nil)

	mock.ExpectExec(regexp.QuoteMeta(deleteSessionSQL)).
		WithArgs("abc").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Delete_Error(t *testing.T) {
	repo, mock := newTestSessionRepo(t, sq.Question, nil)

	mock.ExpectExec(regexp.QuoteMeta(deleteSessionSQL)).
		WillReturnError(errors.New("boom"))

	assert.ErrorIs(t, repo.Delete(context.Background(), "abc"), ErrExecutingStatement)
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	repo, mock := newTestSessionRepo(t, sq.Question, nil)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(deleteExpiredSQL)).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 7))

	deleted, err := repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.EqualValues(t, 7, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_DeleteExpired_Error(t *testing.T) {
	repo, mock := newTestSessionRepo(t, sq.Question, nil)

	mock.ExpectExec(regexp.QuoteMeta(deleteExpiredSQL)).
		WillReturnError(errors.New("boom"))

	deleted, err := repo.DeleteExpired(context.Background(), time.Now())
	assert.Zero(t, deleted)
	assert.ErrorIs(t, err, ErrExecutingStatement)
}
