package model

type AlbumStatsByYear struct {
	ReleaseYear int   `json:"releaseYear"`
	AlbumCount  int64 `json:"albumCount"`
}

type AlbumStatsByArtist struct {
	Artist      string `json:"artist"`
	ReleaseYear int    `json:"releaseYear"`
	AlbumCount  int64  `json:"albumCount"`
}
