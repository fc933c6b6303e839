package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"songapi/internal/apperr"
	"songapi/internal/cache"
	"songapi/internal/model"
	"songapi/internal/repository"
	repoMocks "songapi/internal/repository/mocks"
	"songapi/internal/validation"
)

func TestAlbumStatsService_ByYear(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	repo := new(repoMocks.MockAlbumStatsRepository)

	repo.On("ByYear", mock.Anything, repository.PageQuery{Limit: 2, Offset: 2}).
		Return(&repository.PageResult[model.AlbumStatsByYear]{
			Items: []model.AlbumStatsByYear{{ReleaseYear: 2020, AlbumCount: 4}},
			Total: 5,
		}, nil).Once()

	svc := NewAlbumStatsService(repo, c, time.Minute, zerolog.Nop())

	page, err := svc.ByYear(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Size)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, []model.AlbumStatsByYear{{ReleaseYear: 2020, AlbumCount: 4}}, page.Content)
	assert.True(t, mr.Exists("albums:by-year:1:2"))

	cached, err := svc.ByYear(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, page, cached)
	repo.AssertExpectations(t)
}

func TestAlbumStatsService_ByYear_InvalidPaging(t *testing.T) {
	svc := NewAlbumStatsService(nil, cache.Nop{}, time.Minute, zerolog.Nop())

	_, err := svc.ByYear(context.Background(), -1, 0)
	var vs validation.Violations
	require.ErrorAs(t, err, &vs)
	require.Len(t, vs, 2)
	assert.Equal(t, "page", vs[0].Field)
	assert.Equal(t, "size", vs[1].Field)

	_, err = svc.ByYear(context.Background(), 0, MaxPageSize+1)
	require.ErrorAs(t, err, &vs)
}

func TestAlbumStatsService_PageBeyondOffsetRange(t *testing.T) {
	repo := new(repoMocks.MockAlbumStatsRepository)
	svc := NewAlbumStatsService(repo, cache.Nop{}, time.Minute, zerolog.Nop())

	_, err := svc.ByYear(context.Background(), 184467440737095516, MaxPageSize)
	var vs validation.Violations
	require.ErrorAs(t, err, &vs)
	require.Len(t, vs, 1)
	assert.Equal(t, validation.Violation{Field: "page", Rule: "range", Message: fmt.Sprintf("must be between 0 and %d", MaxPage)}, vs[0])

	_, err = svc.ByArtist(context.Background(), "ArtistA", MaxPage+1, 1)
	require.ErrorAs(t, err, &vs)

	repo.On("ByYear", mock.Anything, repository.PageQuery{Limit: MaxPageSize, Offset: MaxPage * MaxPageSize}).
		Return(&repository.PageResult[model.AlbumStatsByYear]{Total: 2}, nil).Once()
	page, err := svc.ByYear(context.Background(), MaxPage, MaxPageSize)
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	repo.AssertNotCalled(t, "ByArtist", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestAlbumStatsService_ByArtist(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		artist     string
		setupMocks func(repo *repoMocks.MockAlbumStatsRepository)
		wantErr    error
		wantTotal  int64
	}{
		{
			name:   "found",
			artist: "ArtistA",
			setupMocks: func(repo *repoMocks.MockAlbumStatsRepository) {
				repo.On("ByArtist", mock.Anything, "ArtistA", repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.AlbumStatsByArtist]{
						Items: []model.AlbumStatsByArtist{{Artist: "ArtistA", ReleaseYear: 2019, AlbumCount: 2}},
						Total: 1,
					}, nil).Once()
			},
			wantTotal: 1,
		},
		{
			name:    "blank artist",
			artist:  "  ",
			wantErr: apperr.ErrInvalidArtistName,
		},
		{
			name:   "no statistics",
			artist: "Nobody",
			setupMocks: func(repo *repoMocks.MockAlbumStatsRepository) {
				repo.On("ByArtist", mock.Anything, "Nobody", mock.Anything).
					Return(&repository.PageResult[model.AlbumStatsByArtist]{Items: []model.AlbumStatsByArtist{}}, nil).Once()
			},
			wantErr: apperr.ErrAlbumStatsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(repoMocks.MockAlbumStatsRepository)
			if tt.setupMocks != nil {
				tt.setupMocks(repo)
			}
			svc := NewAlbumStatsService(repo, cache.Nop{}, time.Minute, zerolog.Nop())

			page, err := svc.ByArtist(ctx, tt.artist, 0, 10)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, page)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantTotal, page.TotalElements)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAlbumStatsService_ByArtist_ViolationDetails(t *testing.T) {
	svc := NewAlbumStatsService(nil, cache.Nop{}, time.Minute, zerolog.Nop())
	_, err := svc.ByArtist(context.Background(), "", 0, 10)

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	vs, ok := ae.Details.(validation.Violations)
	require.True(t, ok)
	assert.Equal(t, "artist", vs[0].Field)
}
