package postgres

import (
	"context"
	"database/sql"

	"songapi/internal/database"
	"songapi/internal/model"
	"songapi/internal/repository"
)

// SongPostgres is the SQL implementation of repository.SongRepository.
type SongPostgres struct {
	store database.Store
}

// NewSongPostgres creates a new SongPostgres repository.
func NewSongPostgres(store database.Store) *SongPostgres {
	return &SongPostgres{store: store}
}

var _ repository.SongRepository = (*SongPostgres)(nil)

const songColumns = `id, isrc, title, album, release_date, release_year, genre, explicit, popularity`

// Insert stores a song row and returns the stored record with its ID.
func (r *SongPostgres) Insert(ctx context.Context, song *model.Song) (*model.Song, error) {
	const q = `
		INSERT INTO song (isrc, title, album, release_date, release_year, genre, explicit, popularity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	out := *song
	err := r.store.QueryRow(ctx, q,
		song.ISRC,
		song.Title,
		song.Album,
		nullableTime(song.ReleaseDate),
		nullableInt(song.ReleaseYear),
		song.Genre,
		song.Explicit,
		song.Popularity,
	).Scan(&out.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

// FindByID fetches a single song by its ID.
func (r *SongPostgres) FindByID(ctx context.Context, id int64) (*model.Song, error) {
	q := `SELECT ` + songColumns + ` FROM song WHERE id = $1`
	return scanSong(r.store.QueryRow(ctx, q, id))
}

// FindByISRCAndTitle fetches the song identified by its natural key.
func (r *SongPostgres) FindByISRCAndTitle(ctx context.Context, isrc, title string) (*model.Song, error) {
	q := `SELECT ` + songColumns + ` FROM song WHERE isrc = $1 AND title = $2`
	return scanSong(r.store.QueryRow(ctx, q, isrc, title))
}

func scanSong(row database.Row) (*model.Song, error) {
	var (
		s           model.Song
		releaseDate sql.NullTime
		releaseYear sql.NullInt64
	)
	if err := row.Scan(
		&s.ID,
		&s.ISRC,
		&s.Title,
		&s.Album,
		&releaseDate,
		&releaseYear,
		&s.Genre,
		&s.Explicit,
		&s.Popularity,
	); err != nil {
		return nil, mapErr(err)
	}
	if releaseDate.Valid {
		d := releaseDate.Time
		s.ReleaseDate = &d
	}
	if releaseYear.Valid {
		y := int(releaseYear.Int64)
		s.ReleaseYear = &y
	}
	return &s, nil
}
