package model

import "time"

// Song is a single track record.
type Song struct {
	ID          int64      `json:"id"`
	ISRC        string     `json:"isrc"`
	Title       string     `json:"title"`
	Album       string     `json:"album"`
	ReleaseDate *time.Time `json:"releaseDate,omitempty"`
	ReleaseYear *int       `json:"releaseYear,omitempty"`
	Genre       string     `json:"genre"`
	Explicit    bool       `json:"explicit"`
	Popularity  int        `json:"popularity"`
}

type Artist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SongArtist links a song to one of its performing artists.
type SongArtist struct {
	SongID   int64 `json:"songId"`
	ArtistID int64 `json:"artistId"`
}

type SongLike struct {
	UserID  int64     `json:"userId"`
	SongID  int64     `json:"songId"`
	LikedAt time.Time `json:"likedAt"`
}

// SongWithArtists is one parsed ingestion record.
type SongWithArtists struct {
	Song    Song     `json:"song"`
	Artists []string `json:"artists"`
}

// SongDetail is the read view served by GET /api/songs/:id.
type SongDetail struct {
	Song
	Artists   []string `json:"artists"`
	LikeCount int64    `json:"likeCount"`
}

type SongLikeAck struct {
	SongID  int64  `json:"songId"`
	Message string `json:"message"`
}

type IngestionResult struct {
	SuccessCount int `json:"successCount"`
	FailureCount int `json:"failureCount"`
}
