package postgres

import (
	"context"

	"songapi/internal/database"
	"songapi/internal/repository"
)

type SongArtistPostgres struct {
	store database.Store
}

func NewSongArtistPostgres(store database.Store) *SongArtistPostgres {
	return &SongArtistPostgres{store: store}
}

var _ repository.SongArtistRepository = (*SongArtistPostgres)(nil)

// Link inserts the (song, artist) pair unless it already exists.
func (r *SongArtistPostgres) Link(ctx context.Context, songID, artistID int64) error {
	const q = `
		INSERT INTO song_artist (song_id, artist_id)
		VALUES ($1, $2)
		ON CONFLICT (song_id, artist_id) DO NOTHING
	`
	_, err := r.store.Exec(ctx, q, songID, artistID)
	return mapErr(err)
}
