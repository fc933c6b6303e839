package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"songapi/internal/model"
	"songapi/internal/repository"
)

type MockSongLikeRepository struct {
	mock.Mock
}

func (m *MockSongLikeRepository) Exists(ctx context.Context, userID, songID int64) (bool, error) {
	args := m.Called(ctx, userID, songID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSongLikeRepository) Insert(ctx context.Context, like model.SongLike) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockSongLikeRepository) Delete(ctx context.Context, userID, songID int64) (int64, error) {
	args := m.Called(ctx, userID, songID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSongLikeRepository) CountBySong(ctx context.Context, songID int64) (int64, error) {
	args := m.Called(ctx, songID)
	return args.Get(0).(int64), args.Error(1)
}

type MockAlbumStatsRepository struct {
	mock.Mock
}

func (m *MockAlbumStatsRepository) ByYear(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.AlbumStatsByYear], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.AlbumStatsByYear]), args.Error(1)
}

func (m *MockAlbumStatsRepository) ByArtist(ctx context.Context, artist string, pq repository.PageQuery) (*repository.PageResult[model.AlbumStatsByArtist], error) {
	args := m.Called(ctx, artist, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.AlbumStatsByArtist]), args.Error(1)
}
