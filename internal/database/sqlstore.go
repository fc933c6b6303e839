package database

import (
	"context"
	"database/sql"
	"time"
)

// SQLStore is the blocking Store implementation over database/sql. It backs
// tooling such as migrations and the in-memory SQLite engine used in tests.
type SQLStore struct {
	db      *sql.DB
	gate    *Gate
	dialect Dialect
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore wraps db. capacity should match the pool's MaxOpenConns.
func NewSQLStore(db *sql.DB, dialect Dialect, capacity int, acquireTimeout time.Duration) *SQLStore {
	return &SQLStore{db: db, gate: NewGate(capacity, acquireTimeout), dialect: dialect}
}

// DB exposes the underlying handle for tools that need database/sql directly.
func (s *SQLStore) DB() *sql.DB { return s.db }

func (s *SQLStore) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	release, err := s.gate.Acquire(ctx)
	if err != nil {
		return nil, Classify("query", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		release()
		return nil, Classify("query", err)
	}
	return &sqlRows{rows: rows, release: release}, nil
}

func (s *SQLStore) QueryRow(ctx context.Context, query string, args ...any) Row {
	release, err := s.gate.Acquire(ctx)
	if err != nil {
		return errRow{err: Classify("query row", err)}
	}
	return &sqlRow{row: s.db.QueryRowContext(ctx, query, args...), release: release}
}

func (s *SQLStore) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	release, err := s.gate.Acquire(ctx)
	if err != nil {
		return 0, Classify("exec", err)
	}
	defer release()

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, Classify("exec", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		// Not every driver reports affected rows; the statement itself succeeded.
		return 0, nil
	}
	return n, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	release, err := s.gate.Acquire(ctx)
	if err != nil {
		return Classify("ping", err)
	}
	defer release()
	return Classify("ping", s.db.PingContext(ctx))
}

func (s *SQLStore) Dialect() Dialect { return s.dialect }

func (s *SQLStore) Stats() PoolStats { return s.gate.Stats() }

func (s *SQLStore) Close() error { return s.db.Close() }

type sqlRows struct {
	rows    *sql.Rows
	release func()
}

func (r *sqlRows) Next() bool { return r.rows.Next() }

func (r *sqlRows) Scan(dest ...any) error { return Classify("scan", r.rows.Scan(dest...)) }

func (r *sqlRows) Err() error { return Classify("rows", r.rows.Err()) }

func (r *sqlRows) Close() error {
	defer r.release()
	return r.rows.Close()
}

type sqlRow struct {
	row     *sql.Row
	release func()
}

func (r *sqlRow) Scan(dest ...any) error {
	defer r.release()
	return Classify("scan", r.row.Scan(dest...))
}
