package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"songapi/internal/apperr"
	"songapi/internal/database"
	"songapi/internal/http/middleware"
	"songapi/internal/model"
	serviceMocks "songapi/internal/service/mocks"
	"songapi/internal/validation"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(middleware.RequestID())
	return app
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		app := newTestApp()
		app.Get("/health", HealthCheck(fakePinger{}, fakePinger{}))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "up", body["cache"])
	})

	t.Run("cache down is degraded", func(t *testing.T) {
		app := newTestApp()
		app.Get("/health", HealthCheck(fakePinger{}, fakePinger{err: errors.New("redis down")}))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "degraded", body["status"])
		assert.Equal(t, "down", body["cache"])
	})

	t.Run("database down", func(t *testing.T) {
		app := newTestApp()
		app.Get("/health", HealthCheck(fakePinger{err: errors.New("db error")}, nil))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		body := decodeError(t, resp)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
		assert.NotEmpty(t, body.RequestID)
		assert.False(t, body.Success)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestErrorHandler_Translation(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "catalogue error", err: fmt.Errorf("load: %w", apperr.ErrSongNotFound), status: 404, code: "SONG_NOT_FOUND"},
		{name: "violations", err: validation.Violations{{Field: "id", Rule: "min", Message: "must be at least 1"}}, status: 400, code: "VALIDATION_FAILED"},
		{name: "pool exhausted", err: &database.Error{Op: "query", Kind: database.ErrPoolExhausted, Err: errors.New("waited")}, status: 503, code: "SERVICE_UNAVAILABLE"},
		{name: "store unavailable", err: &database.Error{Op: "query", Kind: database.ErrUnavailable, Err: errors.New("refused")}, status: 503, code: "SERVICE_UNAVAILABLE"},
		{name: "store timeout", err: &database.Error{Op: "query", Kind: database.ErrTimeout, Err: errors.New("slow")}, status: 504, code: "REQUEST_TIMEOUT"},
		{name: "deadline", err: context.DeadlineExceeded, status: 504, code: "REQUEST_TIMEOUT"},
		{name: "fiber not found", err: fiber.ErrNotFound, status: 404, code: "NOT_FOUND"},
		{name: "fiber unprocessable", err: fiber.ErrUnprocessableEntity, status: 422, code: "BAD_REQUEST"},
		{name: "unknown", err: errors.New("pq: relation does not exist"), status: 500, code: "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp()
			app.Get("/boom", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			raw, _ := io.ReadAll(resp.Body)
			var body errorPayload
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.status, body.Error.Status)
			assert.Equal(t, "/boom", body.Error.Path)
			assert.NotContains(t, string(raw), "relation does not exist")
		})
	}
}

func TestErrorHandler_CatalogueErrorWithViolations(t *testing.T) {
	vs := validation.Violations{{Field: "artist", Rule: "not_blank", Message: "must not be blank"}}
	app := newTestApp()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return apperr.New(apperr.InvalidArtistName, vs).WithDetails(vs)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeError(t, resp)
	assert.Equal(t, "INVALID_ARTIST_NAME", body.Error.Code)
	assert.Equal(t, []validation.Violation(vs), body.Error.Violations)
	assert.Nil(t, body.Error.Details)
}

func TestGetSong(t *testing.T) {
	mockSvc := new(serviceMocks.MockSongService)
	app := newTestApp()
	app.Get("/api/songs/:id", GetSong(mockSvc))

	t.Run("success", func(t *testing.T) {
		year := 2020
		detail := &model.SongDetail{
			Song:      model.Song{ID: 7, ISRC: "USA1", Title: "First", ReleaseYear: &year},
			Artists:   []string{"ArtistA"},
			LikeCount: 3,
		}
		mockSvc.On("Get", mock.Anything, int64(7)).Return(detail, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/songs/7", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got model.SongDetail
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, *detail, got)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(8)).Return(nil, apperr.New(apperr.SongNotFound, database.ErrNotFound)).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/songs/8", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "SONG_NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/songs/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		require.Len(t, body.Error.Violations, 1)
		assert.Equal(t, "id", body.Error.Violations[0].Field)
	})
}

func TestLikeSong(t *testing.T) {
	mockSvc := new(serviceMocks.MockSongLikeService)
	app := newTestApp()
	app.Post("/api/songs/:songId/like", LikeSong(mockSvc))

	ack := &model.SongLikeAck{SongID: 3, Message: "like recorded"}

	t.Run("user from header", func(t *testing.T) {
		mockSvc.On("Like", mock.Anything, int64(3), int64(10)).Return(ack, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/songs/3/like", nil)
		req.Header.Set(UserIDHeader, "10")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body CommonResponse[model.SongLikeAck]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Success)
		assert.Equal(t, "SUCCESS", body.Code)
		assert.Equal(t, *ack, body.Payload)
	})

	t.Run("user from json body", func(t *testing.T) {
		mockSvc.On("Like", mock.Anything, int64(3), int64(11)).Return(ack, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/songs/3/like", strings.NewReader(`{"userId":11}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing user", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/songs/3/like", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		require.Len(t, body.Error.Violations, 1)
		assert.Equal(t, validation.Violation{Field: "userId", Rule: "required", Message: "must be present"}, body.Error.Violations[0])
	})

	t.Run("bad song id and user id reported together", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/songs/x/like", nil)
		req.Header.Set(UserIDHeader, "me")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Len(t, decodeError(t, resp).Error.Violations, 2)
	})

	t.Run("already liked", func(t *testing.T) {
		mockSvc.On("Like", mock.Anything, int64(3), int64(12)).Return(nil, apperr.ErrSongLikeExists).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/songs/3/like", nil)
		req.Header.Set(UserIDHeader, "12")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "SONG_LIKE_EXISTS", decodeError(t, resp).Error.Code)
	})

	mockSvc.AssertExpectations(t)
}

func TestUnlikeSong(t *testing.T) {
	mockSvc := new(serviceMocks.MockSongLikeService)
	app := newTestApp()
	app.Delete("/api/songs/:songId/unlike", UnlikeSong(mockSvc))

	mockSvc.On("Unlike", mock.Anything, int64(3), int64(10)).
		Return(&model.SongLikeAck{SongID: 3, Message: "like removed"}, nil).Once()
	mockSvc.On("Unlike", mock.Anything, int64(4), int64(10)).
		Return(nil, apperr.ErrSongLikeNotExists).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/songs/3/unlike", nil)
	req.Header.Set(UserIDHeader, "10")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, "/api/songs/4/unlike", nil)
	req.Header.Set(UserIDHeader, "10")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "SONG_LIKE_NOT_EXISTS", decodeError(t, resp).Error.Code)

	mockSvc.AssertExpectations(t)
}

func TestAlbumStats(t *testing.T) {
	mockSvc := new(serviceMocks.MockAlbumStatsService)
	app := newTestApp()
	app.Get("/api/albums/by-year", AlbumStatsByYear(mockSvc))
	app.Get("/api/albums/by-artist", AlbumStatsByArtist(mockSvc))

	t.Run("by year uses default paging", func(t *testing.T) {
		page := model.NewPage([]model.AlbumStatsByYear{{ReleaseYear: 2020, AlbumCount: 2}}, 0, 10, 1)
		mockSvc.On("ByYear", mock.Anything, 0, 10).Return(&page, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/albums/by-year", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got model.Page[model.AlbumStatsByYear]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, page, got)
	})

	t.Run("by year rejects non-numeric paging", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/albums/by-year?page=x&size=y", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Len(t, decodeError(t, resp).Error.Violations, 2)
	})

	t.Run("by artist", func(t *testing.T) {
		page := model.NewPage([]model.AlbumStatsByArtist{{Artist: "ArtistA", ReleaseYear: 2020, AlbumCount: 1}}, 1, 5, 6)
		mockSvc.On("ByArtist", mock.Anything, "ArtistA", 1, 5).Return(&page, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/albums/by-artist?artist=ArtistA&page=1&size=5", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("by artist not found", func(t *testing.T) {
		mockSvc.On("ByArtist", mock.Anything, "Nobody", 0, 10).Return(nil, apperr.ErrAlbumStatsNotFound).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/albums/by-artist?artist=Nobody", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "ALBUM_STATS_NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	mockSvc.AssertExpectations(t)
}

func TestIngestSongs(t *testing.T) {
	mockSvc := new(serviceMocks.MockIngestionService)
	app := newTestApp()
	app.Get("/api/songs/ingest", IngestSongs(mockSvc, "data/songs.ndjson"))

	mockSvc.On("IngestFile", mock.Anything, "data/songs.ndjson").
		Return(&model.IngestionResult{SuccessCount: 5, FailureCount: 1}, nil).Once()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/songs/ingest", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body CommonResponse[model.IngestionResult]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, model.IngestionResult{SuccessCount: 5, FailureCount: 1}, body.Payload)

	mockSvc.On("IngestFile", mock.Anything, "data/songs.ndjson").
		Return(nil, apperr.New(apperr.SongIngestionError, errors.New("open: no such file"))).Once()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/songs/ingest", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "SONG_INGESTION_ERROR", decodeError(t, resp).Error.Code)

	mockSvc.AssertExpectations(t)
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadDataset(t *testing.T) {
	mockSvc := new(serviceMocks.MockIngestionService)
	app := newTestApp()
	app.Post("/api/songs/datasets", UploadDataset(mockSvc))

	t.Run("success", func(t *testing.T) {
		content := `{"ISRC":"A","song":"B"}` + "\n"
		body, ct := multipartBody(t, "songs.ndjson", content)
		mockSvc.On("IngestDataset", mock.Anything, "songs.ndjson", mock.Anything, int64(len(content))).
			Return(&model.IngestionResult{SuccessCount: 1}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/songs/datasets", body)
		req.Header.Set("Content-Type", ct)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("no file", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/songs/datasets", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "BAD_REQUEST", decodeError(t, resp).Error.Code)
	})

	t.Run("storage not configured", func(t *testing.T) {
		body, ct := multipartBody(t, "songs.ndjson", "{}")
		mockSvc.On("IngestDataset", mock.Anything, "songs.ndjson", mock.Anything, int64(2)).
			Return(nil, apperr.ErrStorageUnavailable).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/songs/datasets", body)
		req.Header.Set("Content-Type", ct)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "STORAGE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})

	t.Run("rejects empty file with wrong extension", func(t *testing.T) {
		body, ct := multipartBody(t, "songs.csv", "")

		req := httptest.NewRequest(http.MethodPost, "/api/songs/datasets", body)
		req.Header.Set("Content-Type", ct)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		payload := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", payload.Error.Code)
		require.Len(t, payload.Error.Violations, 2)
		assert.Equal(t, validation.Violation{Field: "file", Rule: "pattern", Message: "must be an .ndjson, .jsonl or .json file"}, payload.Error.Violations[0])
		assert.Equal(t, "size", payload.Error.Violations[1].Field)
		assert.Equal(t, "gt=0", payload.Error.Violations[1].Rule)
	})

	mockSvc.AssertExpectations(t)
}

func newRoutedApp(songs *serviceMocks.MockSongService, ingestion *serviceMocks.MockIngestionService, timeout time.Duration) *fiber.App {
	app := newTestApp()
	RegisterRoutes(app, Routes{
		DB:             fakePinger{},
		Cache:          fakePinger{},
		Songs:          songs,
		Likes:          new(serviceMocks.MockSongLikeService),
		Albums:         new(serviceMocks.MockAlbumStatsService),
		Ingestion:      ingestion,
		IngestFilePath: "songs.ndjson",
		RequestTimeout: timeout,
		Metrics:        prometheus.NewRegistry(),
	})
	return app
}

func TestRouting(t *testing.T) {
	songs := new(serviceMocks.MockSongService)
	ingestion := new(serviceMocks.MockIngestionService)
	app := newRoutedApp(songs, ingestion, 20*time.Millisecond)

	t.Run("not found route", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/non-existent", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("ingest is not a song id", func(t *testing.T) {
		ingestion.On("IngestFile", mock.Anything, "songs.ndjson").Return(&model.IngestionResult{}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/songs/ingest", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		ingestion.AssertExpectations(t)
		songs.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("slow query times out", func(t *testing.T) {
		songs.On("Get", mock.Anything, int64(1)).
			Run(func(args mock.Arguments) {
				<-args.Get(0).(context.Context).Done()
			}).
			Return(nil, &database.Error{Op: "query", Kind: database.ErrCanceled, Err: context.DeadlineExceeded}).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/songs/1", nil), 2000)
		require.NoError(t, err)
		assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
		assert.Equal(t, "REQUEST_TIMEOUT", decodeError(t, resp).Error.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestSwaggerDocument(t *testing.T) {
	app := newRoutedApp(new(serviceMocks.MockSongService), new(serviceMocks.MockIngestionService), time.Second)

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	req.Host = "songs.local:8080"
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		Host  string                    `json:"host"`
		Info  struct{ Title string }    `json:"info"`
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "Song Aggregator API", doc.Info.Title)
	assert.Equal(t, "songs.local:8080", doc.Host)

	routes := map[string]string{
		"/api/songs/{id}":            "get",
		"/api/songs/{songId}/like":   "post",
		"/api/songs/{songId}/unlike": "delete",
		"/api/songs/ingest":          "get",
		"/api/songs/datasets":        "post",
		"/api/albums/by-year":        "get",
		"/api/albums/by-artist":      "get",
	}
	for path, method := range routes {
		assert.Contains(t, doc.Paths[path], method, path)
	}
}
