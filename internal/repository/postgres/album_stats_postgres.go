package postgres

import (
	"context"

	"songapi/internal/database"
	"songapi/internal/model"
	"songapi/internal/repository"
)

// AlbumStatsPostgres aggregates distinct albums per release year. Songs
// without a release year are left out of every statistic.
type AlbumStatsPostgres struct {
	store database.Store
}

func NewAlbumStatsPostgres(store database.Store) *AlbumStatsPostgres {
	return &AlbumStatsPostgres{store: store}
}

var _ repository.AlbumStatsRepository = (*AlbumStatsPostgres)(nil)

// ByYear returns one row per release year, ordered by year.
func (r *AlbumStatsPostgres) ByYear(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.AlbumStatsByYear], error) {
	const qList = `
		SELECT release_year, COUNT(DISTINCT album) AS album_count
		FROM song
		WHERE release_year IS NOT NULL
		GROUP BY release_year
		ORDER BY release_year
		LIMIT $1 OFFSET $2
	`
	rows, err := r.store.Query(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, mapErr(err)
	}
	items := make([]model.AlbumStatsByYear, 0)
	for rows.Next() {
		var s model.AlbumStatsByYear
		if err := rows.Scan(&s.ReleaseYear, &s.AlbumCount); err != nil {
			rows.Close()
			return nil, mapErr(err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, mapErr(err)
	}
	// Release the rows before counting; a single-connection store cannot
	// serve both at once.
	rows.Close()

	const qCount = `
		SELECT COUNT(*) FROM (
			SELECT release_year
			FROM song
			WHERE release_year IS NOT NULL
			GROUP BY release_year
		) AS years
	`
	var total int64
	if err := r.store.QueryRow(ctx, qCount).Scan(&total); err != nil {
		return nil, mapErr(err)
	}

	return &repository.PageResult[model.AlbumStatsByYear]{Items: items, Total: total}, nil
}

// ByArtist returns one row per release year of the named artist's songs.
func (r *AlbumStatsPostgres) ByArtist(ctx context.Context, artist string, pq repository.PageQuery) (*repository.PageResult[model.AlbumStatsByArtist], error) {
	const qList = `
		SELECT a.name, s.release_year, COUNT(DISTINCT s.album) AS album_count
		FROM song s
		JOIN song_artist sa ON s.id = sa.song_id
		JOIN artist a ON sa.artist_id = a.id
		WHERE a.name = $1 AND s.release_year IS NOT NULL
		GROUP BY a.name, s.release_year
		ORDER BY s.release_year
		LIMIT $2 OFFSET $3
	`
	rows, err := r.store.Query(ctx, qList, artist, pq.Limit, pq.Offset)
	if err != nil {
		return nil, mapErr(err)
	}
	items := make([]model.AlbumStatsByArtist, 0)
	for rows.Next() {
		var s model.AlbumStatsByArtist
		if err := rows.Scan(&s.Artist, &s.ReleaseYear, &s.AlbumCount); err != nil {
			rows.Close()
			return nil, mapErr(err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, mapErr(err)
	}
	rows.Close()

	const qCount = `
		SELECT COUNT(*) FROM (
			SELECT s.release_year
			FROM song s
			JOIN song_artist sa ON s.id = sa.song_id
			JOIN artist a ON sa.artist_id = a.id
			WHERE a.name = $1 AND s.release_year IS NOT NULL
			GROUP BY s.release_year
		) AS sub
	`
	var total int64
	if err := r.store.QueryRow(ctx, qCount, artist).Scan(&total); err != nil {
		return nil, mapErr(err)
	}

	return &repository.PageResult[model.AlbumStatsByArtist]{Items: items, Total: total}, nil
}
