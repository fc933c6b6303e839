package postgres

import (
	"context"

	"songapi/internal/database"
	"songapi/internal/model"
	"songapi/internal/repository"
)

// SongLikePostgres is the SQL implementation of repository.SongLikeRepository.
type SongLikePostgres struct {
	store database.Store
}

func NewSongLikePostgres(store database.Store) *SongLikePostgres {
	return &SongLikePostgres{store: store}
}

var _ repository.SongLikeRepository = (*SongLikePostgres)(nil)

func (r *SongLikePostgres) Exists(ctx context.Context, userID, songID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM song_like WHERE user_id = $1 AND song_id = $2)`
	var exists bool
	if err := r.store.QueryRow(ctx, q, userID, songID).Scan(&exists); err != nil {
		return false, mapErr(err)
	}
	return exists, nil
}

func (r *SongLikePostgres) Insert(ctx context.Context, like model.SongLike) error {
	const q = `INSERT INTO song_like (user_id, song_id, liked_at) VALUES ($1, $2, $3)`
	_, err := r.store.Exec(ctx, q, like.UserID, like.SongID, like.LikedAt)
	return mapErr(err)
}

func (r *SongLikePostgres) Delete(ctx context.Context, userID, songID int64) (int64, error) {
	const q = `DELETE FROM song_like WHERE user_id = $1 AND song_id = $2`
	n, err := r.store.Exec(ctx, q, userID, songID)
	if err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}

func (r *SongLikePostgres) CountBySong(ctx context.Context, songID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM song_like WHERE song_id = $1`
	var n int64
	if err := r.store.QueryRow(ctx, q, songID).Scan(&n); err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}
