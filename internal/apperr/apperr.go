// Package apperr holds the application error catalogue shared by services and
// the HTTP layer.
package apperr

import (
	"errors"
	"net/http"
)

// ErrorCode is a catalogue entry: the HTTP status and public code/message a
// failure is reported with.
type ErrorCode struct {
	Status  int
	Code    string
	Message string
}

var (
	SongIngestionError  = ErrorCode{http.StatusInternalServerError, "SONG_INGESTION_ERROR", "failed to ingest song data"}
	SongNotFound        = ErrorCode{http.StatusNotFound, "SONG_NOT_FOUND", "song not found"}
	SongLikeExists      = ErrorCode{http.StatusConflict, "SONG_LIKE_EXISTS", "song is already liked"}
	SongLikeNotExists   = ErrorCode{http.StatusBadRequest, "SONG_LIKE_NOT_EXISTS", "song is not liked"}
	InvalidArtistName   = ErrorCode{http.StatusBadRequest, "INVALID_ARTIST_NAME", "artist name is required"}
	AlbumStatsNotFound  = ErrorCode{http.StatusNotFound, "ALBUM_STATS_NOT_FOUND", "album statistics not found"}
	ValidationFailed    = ErrorCode{http.StatusBadRequest, "VALIDATION_FAILED", "request validation failed"}
	StorageUnavailable  = ErrorCode{http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "object storage is not configured"}
	ServiceUnavailable  = ErrorCode{http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "service temporarily unavailable"}
	RequestTimeout      = ErrorCode{http.StatusGatewayTimeout, "REQUEST_TIMEOUT", "request timed out"}
	InternalServerError = ErrorCode{http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error"}
)

// Error attaches a catalogue code to an underlying cause. Details, when set,
// is rendered in the response body next to the code.
type Error struct {
	Code    ErrorCode
	Err     error
	Details any
}

// New returns an *Error for code wrapping err.
func New(code ErrorCode, err error) *Error {
	return &Error{Code: code, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Code.Code + ": " + e.Code.Message
	}
	return e.Code.Code + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code.Code == e.Code.Code
}

// WithDetails returns a copy of e carrying details.
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// CodeOf reports the catalogue entry carried by err, if any.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return ErrorCode{}, false
}

// Sentinels for errors.Is checks.
var (
	ErrSongNotFound       = New(SongNotFound, nil)
	ErrSongLikeExists     = New(SongLikeExists, nil)
	ErrSongLikeNotExists  = New(SongLikeNotExists, nil)
	ErrInvalidArtistName  = New(InvalidArtistName, nil)
	ErrAlbumStatsNotFound = New(AlbumStatsNotFound, nil)
	ErrSongIngestion      = New(SongIngestionError, nil)
	ErrStorageUnavailable = New(StorageUnavailable, nil)
)
