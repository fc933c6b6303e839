package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"songapi/internal/model"
)

type MockSongRepository struct {
	mock.Mock
}

func (m *MockSongRepository) Insert(ctx context.Context, song *model.Song) (*model.Song, error) {
	args := m.Called(ctx, song)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Song), args.Error(1)
}

func (m *MockSongRepository) FindByID(ctx context.Context, id int64) (*model.Song, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Song), args.Error(1)
}

func (m *MockSongRepository) FindByISRCAndTitle(ctx context.Context, isrc, title string) (*model.Song, error) {
	args := m.Called(ctx, isrc, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Song), args.Error(1)
}

type MockArtistRepository struct {
	mock.Mock
}

func (m *MockArtistRepository) Insert(ctx context.Context, name string) (*model.Artist, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artist), args.Error(1)
}

func (m *MockArtistRepository) FindByName(ctx context.Context, name string) (*model.Artist, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artist), args.Error(1)
}

func (m *MockArtistRepository) ListBySong(ctx context.Context, songID int64) ([]string, error) {
	args := m.Called(ctx, songID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockSongArtistRepository struct {
	mock.Mock
}

func (m *MockSongArtistRepository) Link(ctx context.Context, songID, artistID int64) error {
	args := m.Called(ctx, songID, artistID)
	return args.Error(0)
}
