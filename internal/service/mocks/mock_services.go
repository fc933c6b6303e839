package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"songapi/internal/model"
)

type MockSongService struct {
	mock.Mock
}

func (m *MockSongService) Get(ctx context.Context, id int64) (*model.SongDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SongDetail), args.Error(1)
}

type MockAlbumStatsService struct {
	mock.Mock
}

func (m *MockAlbumStatsService) ByYear(ctx context.Context, page, size int) (*model.Page[model.AlbumStatsByYear], error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.AlbumStatsByYear]), args.Error(1)
}

func (m *MockAlbumStatsService) ByArtist(ctx context.Context, artist string, page, size int) (*model.Page[model.AlbumStatsByArtist], error) {
	args := m.Called(ctx, artist, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.AlbumStatsByArtist]), args.Error(1)
}

type MockSongLikeService struct {
	mock.Mock
}

func (m *MockSongLikeService) Like(ctx context.Context, songID, userID int64) (*model.SongLikeAck, error) {
	args := m.Called(ctx, songID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SongLikeAck), args.Error(1)
}

func (m *MockSongLikeService) Unlike(ctx context.Context, songID, userID int64) (*model.SongLikeAck, error) {
	args := m.Called(ctx, songID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SongLikeAck), args.Error(1)
}

type MockIngestionService struct {
	mock.Mock
}

func (m *MockIngestionService) Ingest(ctx context.Context, r io.Reader) (*model.IngestionResult, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IngestionResult), args.Error(1)
}

func (m *MockIngestionService) IngestFile(ctx context.Context, path string) (*model.IngestionResult, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IngestionResult), args.Error(1)
}

func (m *MockIngestionService) IngestDataset(ctx context.Context, filename string, r io.Reader, size int64) (*model.IngestionResult, error) {
	args := m.Called(ctx, filename, r, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IngestionResult), args.Error(1)
}

func (m *MockIngestionService) Wait() {
	m.Called()
}
