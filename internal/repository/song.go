package repository

import (
	"context"

	"songapi/internal/model"
)

// SongRepository persists song rows.
type SongRepository interface {
	// Insert stores song and returns it with its generated ID.
	// A song with the same ISRC and title yields ErrDuplicate.
	Insert(ctx context.Context, song *model.Song) (*model.Song, error)

	FindByID(ctx context.Context, id int64) (*model.Song, error)

	FindByISRCAndTitle(ctx context.Context, isrc, title string) (*model.Song, error)
}

// ArtistRepository persists artist rows. Names are unique.
type ArtistRepository interface {
	Insert(ctx context.Context, name string) (*model.Artist, error)
	FindByName(ctx context.Context, name string) (*model.Artist, error)
	// ListBySong returns the names of the artists linked to songID, sorted.
	ListBySong(ctx context.Context, songID int64) ([]string, error)
}

// SongArtistRepository links songs to artists.
type SongArtistRepository interface {
	// Link is idempotent: linking an existing pair is not an error.
	Link(ctx context.Context, songID, artistID int64) error
}

type SongLikeRepository interface {
	Exists(ctx context.Context, userID, songID int64) (bool, error)
	// Insert yields ErrDuplicate when the user already likes the song.
	Insert(ctx context.Context, like model.SongLike) error
	// Delete returns the number of rows removed.
	Delete(ctx context.Context, userID, songID int64) (int64, error)
	CountBySong(ctx context.Context, songID int64) (int64, error)
}

// AlbumStatsRepository aggregates distinct album counts per release year.
type AlbumStatsRepository interface {
	ByYear(ctx context.Context, pq PageQuery) (*PageResult[model.AlbumStatsByYear], error)
	ByArtist(ctx context.Context, artist string, pq PageQuery) (*PageResult[model.AlbumStatsByArtist], error)
}
