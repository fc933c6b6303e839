package postgres

import (
	"context"

	"songapi/internal/database"
	"songapi/internal/model"
	"songapi/internal/repository"
)

// ArtistPostgres is the SQL implementation of repository.ArtistRepository.
type ArtistPostgres struct {
	store database.Store
}

func NewArtistPostgres(store database.Store) *ArtistPostgres {
	return &ArtistPostgres{store: store}
}

var _ repository.ArtistRepository = (*ArtistPostgres)(nil)

func (r *ArtistPostgres) Insert(ctx context.Context, name string) (*model.Artist, error) {
	const q = `INSERT INTO artist (name) VALUES ($1) RETURNING id, name`
	var a model.Artist
	if err := r.store.QueryRow(ctx, q, name).Scan(&a.ID, &a.Name); err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func (r *ArtistPostgres) FindByName(ctx context.Context, name string) (*model.Artist, error) {
	const q = `SELECT id, name FROM artist WHERE name = $1`
	var a model.Artist
	if err := r.store.QueryRow(ctx, q, name).Scan(&a.ID, &a.Name); err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func (r *ArtistPostgres) ListBySong(ctx context.Context, songID int64) ([]string, error) {
	const q = `
		SELECT a.name
		FROM artist a
		JOIN song_artist sa ON sa.artist_id = a.id
		WHERE sa.song_id = $1
		ORDER BY a.name
	`
	rows, err := r.store.Query(ctx, q, songID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, mapErr(err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	return names, nil
}
