package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxStore is the primary Store implementation over a pgx connection pool.
// Every call suspends only its own goroutine and aborts when ctx ends.
type PgxStore struct {
	pool *pgxpool.Pool
	gate *Gate
}

var _ Store = (*PgxStore)(nil)

// NewPgxStore wraps pool with a gate sized to the pool's MaxConns.
func NewPgxStore(pool *pgxpool.Pool, acquireTimeout time.Duration) *PgxStore {
	return &PgxStore{pool: pool, gate: NewGate(int(pool.Config().MaxConns), acquireTimeout)}
}

func (s *PgxStore) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	release, err := s.gate.Acquire(ctx)
	if err != nil {
		return nil, Classify("query", err)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		release()
		return nil, Classify("query", err)
	}
	return &pgxRows{rows: rows, release: release}, nil
}

func (s *PgxStore) QueryRow(ctx context.Context, query string, args ...any) Row {
	release, err := s.gate.Acquire(ctx)
	if err != nil {
		return errRow{err: Classify("query row", err)}
	}
	return &pgxRow{row: s.pool.QueryRow(ctx, query, args...), release: release}
}

func (s *PgxStore) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	release, err := s.gate.Acquire(ctx)
	if err != nil {
		return 0, Classify("exec", err)
	}
	defer release()

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, Classify("exec", err)
	}
	return tag.RowsAffected(), nil
}

func (s *PgxStore) Ping(ctx context.Context) error {
	release, err := s.gate.Acquire(ctx)
	if err != nil {
		return Classify("ping", err)
	}
	defer release()
	return Classify("ping", s.pool.Ping(ctx))
}

func (s *PgxStore) Dialect() Dialect { return DialectPostgres }

func (s *PgxStore) Stats() PoolStats { return s.gate.Stats() }

func (s *PgxStore) Close() error {
	s.pool.Close()
	return nil
}

type pgxRows struct {
	rows    pgx.Rows
	release func()
}

func (r *pgxRows) Next() bool { return r.rows.Next() }

func (r *pgxRows) Scan(dest ...any) error { return Classify("scan", r.rows.Scan(dest...)) }

func (r *pgxRows) Err() error { return Classify("rows", r.rows.Err()) }

func (r *pgxRows) Close() error {
	defer r.release()
	r.rows.Close()
	return Classify("rows", r.rows.Err())
}

type pgxRow struct {
	row     pgx.Row
	release func()
}

func (r *pgxRow) Scan(dest ...any) error {
	defer r.release()
	return Classify("scan", r.row.Scan(dest...))
}
