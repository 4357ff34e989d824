package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrSessionNotFound is returned when no valid session exists for a key.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrSessionNotSaved is returned when an upsert completes without error
	// but affects no rows.
	ErrSessionNotSaved = errors.New("session was not saved")

	// ErrUnsupportedEngine is returned by [NewDB] for an unknown engine.
	ErrUnsupportedEngine = errors.New("unsupported database engine")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan session row")

	// ErrEncodingSessionData is returned when session data cannot be
	// serialized to JSON.
	ErrEncodingSessionData = errors.New("failed to encode session data")

	// ErrDecodingSessionData is returned when the stored session data is not
	// valid JSON.
	ErrDecodingSessionData = errors.New("failed to decode session data")
)
