package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"songapi/internal/database"
)

type migrationStep struct {
	Name     string
	Postgres string
	SQLite   string
}

func (s migrationStep) sql(d database.Dialect) string {
	if d == database.DialectSQLite && s.SQLite != "" {
		return s.SQLite
	}
	return s.Postgres
}

var steps = []migrationStep{
	{
		Name: "create_table_song",
		Postgres: `CREATE TABLE IF NOT EXISTS song (
  id           BIGINT  GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
  isrc         TEXT    NOT NULL,
  title        TEXT    NOT NULL,
  album        TEXT    NOT NULL DEFAULT '',
  release_date DATE,
  release_year INTEGER,
  genre        TEXT    NOT NULL DEFAULT '',
  explicit     BOOLEAN NOT NULL DEFAULT FALSE,
  popularity   INTEGER NOT NULL DEFAULT 0,
  CONSTRAINT uq_song_isrc_title UNIQUE (isrc, title)
);`,
		SQLite: `CREATE TABLE IF NOT EXISTS song (
  id           INTEGER PRIMARY KEY,
  isrc         TEXT    NOT NULL,
  title        TEXT    NOT NULL,
  album        TEXT    NOT NULL DEFAULT '',
  release_date DATE,
  release_year INTEGER,
  genre        TEXT    NOT NULL DEFAULT '',
  explicit     BOOLEAN NOT NULL DEFAULT FALSE,
  popularity   INTEGER NOT NULL DEFAULT 0,
  CONSTRAINT uq_song_isrc_title UNIQUE (isrc, title)
);`,
	},
	{
		Name: "create_table_artist",
		Postgres: `CREATE TABLE IF NOT EXISTS artist (
  id   BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
  name TEXT   NOT NULL UNIQUE
);`,
		SQLite: `CREATE TABLE IF NOT EXISTS artist (
  id   INTEGER PRIMARY KEY,
  name TEXT    NOT NULL UNIQUE
);`,
	},
	{
		Name: "create_table_song_artist",
		Postgres: `CREATE TABLE IF NOT EXISTS song_artist (
  song_id   BIGINT NOT NULL REFERENCES song (id) ON DELETE CASCADE,
  artist_id BIGINT NOT NULL REFERENCES artist (id) ON DELETE CASCADE,
  PRIMARY KEY (song_id, artist_id)
);`,
	},
	{
		Name: "create_table_song_like",
		Postgres: `CREATE TABLE IF NOT EXISTS song_like (
  user_id  BIGINT      NOT NULL,
  song_id  BIGINT      NOT NULL REFERENCES song (id) ON DELETE CASCADE,
  liked_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (user_id, song_id)
);`,
		SQLite: `CREATE TABLE IF NOT EXISTS song_like (
  user_id  INTEGER   NOT NULL,
  song_id  INTEGER   NOT NULL REFERENCES song (id) ON DELETE CASCADE,
  liked_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (user_id, song_id)
);`,
	},
	{
		Name:     "create_index_song_release_year",
		Postgres: `CREATE INDEX IF NOT EXISTS idx_song_release_year ON song (release_year);`,
	},
	{
		Name:     "create_index_song_artist_artist_id",
		Postgres: `CREATE INDEX IF NOT EXISTS idx_song_artist_artist_id ON song_artist (artist_id);`,
	},
	{
		Name:     "create_index_song_like_song_id",
		Postgres: `CREATE INDEX IF NOT EXISTS idx_song_like_song_id ON song_like (song_id);`,
	},
}

func sentinelQuery(d database.Dialect) string {
	if d == database.DialectSQLite {
		return `SELECT COUNT(*) > 0 FROM sqlite_master WHERE type = 'table' AND name = 'song_like'`
	}
	return `SELECT to_regclass('public.song_like') IS NOT NULL`
}

// EnsureMigrated checks for the 'song_like' table, which the last table step
// creates, and applies every step when it is missing.
func EnsureMigrated(ctx context.Context, store database.Store, logger zerolog.Logger, dbHost string) error {
	start := time.Now()
	log := logger.With().Str("component", "database").Str("db_host", dbHost).Logger()

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Msg("")

	var exists bool
	if err := store.QueryRow(ctx, sentinelQuery(store.Dialect())).Scan(&exists); err != nil {
		log.Error().
			Str("event", "db_migration_failed").
			Str("status", "error").
			Str("error_message", fmt.Sprintf("failed to check sentinel table: %v", err)).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Msg("")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := store.Exec(ctx, step.sql(store.Dialect())); err != nil {
			log.Error().
				Str("event", "db_migration_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Str("error_message", err.Error()).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Msg("")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info().
			Str("event", "db_migration_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Msg("")
	}

	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("")

	return nil
}
