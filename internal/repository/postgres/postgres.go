// Package postgres implements the repositories with PostgreSQL-dialect SQL
// over database.Store. The same queries run on the pgx pool, on database/sql,
// and on the embedded SQLite engine used in tests.
package postgres

import (
	"errors"
	"fmt"
	"time"

	"songapi/internal/database"
	"songapi/internal/repository"
)

// mapErr translates classified store errors into repository errors, keeping
// the underlying chain for errors.Is on database kinds.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrNotFound):
		return fmt.Errorf("%w: %w", repository.ErrNotFound, err)
	case errors.Is(err, database.ErrConflict):
		return fmt.Errorf("%w: %w", repository.ErrDuplicate, err)
	}
	return err
}

// nullableTime binds a nil pointer as SQL NULL.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullableInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}
