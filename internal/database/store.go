package database

import "context"

// Dialect names the SQL engine behind a Store.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Rows is a lazy, finite result sequence. It cannot be restarted; reissue the
// query instead. Close must be called to give the pool slot back.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Row is the result of a single-row query. Errors are deferred until Scan,
// which must always be called to give the pool slot back.
type Row interface {
	Scan(dest ...any) error
}

// PoolStats describes how busy the store's bounded pool is.
type PoolStats struct {
	Capacity int64
	InUse    int64
	Waiting  int64
}

// Store is the data-access capability shared by repositories. Implementations
// never block past the caller's context and fail with ErrPoolExhausted when no
// pool slot frees up in time.
type Store interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
	// Exec runs a statement and reports the number of affected rows.
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Ping(ctx context.Context) error
	Dialect() Dialect
	Stats() PoolStats
	Close() error
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error { return r.err }
