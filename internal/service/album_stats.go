package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"songapi/internal/apperr"
	"songapi/internal/cache"
	"songapi/internal/model"
	"songapi/internal/repository"
	"songapi/internal/validation"
)

const (
	MaxPageSize     = 100
	MaxArtistLength = 255
	// MaxPage keeps page*size within a 32-bit offset.
	MaxPage = math.MaxInt32 / MaxPageSize
)

// AlbumStatsService reports distinct album counts per release year.
type AlbumStatsService interface {
	ByYear(ctx context.Context, page, size int) (*model.Page[model.AlbumStatsByYear], error)
	// ByArtist fails with ALBUM_STATS_NOT_FOUND when the requested page is empty.
	ByArtist(ctx context.Context, artist string, page, size int) (*model.Page[model.AlbumStatsByArtist], error)
}

type albumStatsService struct {
	repo   repository.AlbumStatsRepository
	cache  cache.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

func NewAlbumStatsService(repo repository.AlbumStatsRepository, c cache.Cache, ttl time.Duration, logger zerolog.Logger) AlbumStatsService {
	return &albumStatsService{
		repo:   repo,
		cache:  c,
		ttl:    ttl,
		logger: logger.With().Str("component", "album_stats_service").Logger(),
	}
}

func pagingFields(page, size int) []validation.FieldSpec {
	return []validation.FieldSpec{
		validation.Field("page", page, validation.Range(0, MaxPage)),
		validation.Field("size", size, validation.Range(1, MaxPageSize)),
	}
}

func (s *albumStatsService) ByYear(ctx context.Context, page, size int) (*model.Page[model.AlbumStatsByYear], error) {
	if err := validation.Validate(pagingFields(page, size)...).Err(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("albums:by-year:%d:%d", page, size)
	p, err := cache.ReadThrough(ctx, s.cache, s.logger, key, s.ttl, func(ctx context.Context) (model.Page[model.AlbumStatsByYear], error) {
		res, err := s.repo.ByYear(ctx, repository.PageQuery{Limit: size, Offset: page * size})
		if err != nil {
			return model.Page[model.AlbumStatsByYear]{}, err
		}
		return model.NewPage(res.Items, page, size, res.Total), nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *albumStatsService) ByArtist(ctx context.Context, artist string, page, size int) (*model.Page[model.AlbumStatsByArtist], error) {
	artistViolations := validation.Validate(
		validation.Field("artist", artist, validation.NotBlank(), validation.Length(1, MaxArtistLength)),
	)
	if len(artistViolations) > 0 {
		return nil, apperr.New(apperr.InvalidArtistName, artistViolations).WithDetails(artistViolations)
	}
	if err := validation.Validate(pagingFields(page, size)...).Err(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("albums:by-artist:%s:%d:%d", artist, page, size)
	p, err := cache.ReadThrough(ctx, s.cache, s.logger, key, s.ttl, func(ctx context.Context) (model.Page[model.AlbumStatsByArtist], error) {
		res, err := s.repo.ByArtist(ctx, artist, repository.PageQuery{Limit: size, Offset: page * size})
		if err != nil {
			return model.Page[model.AlbumStatsByArtist]{}, err
		}
		if len(res.Items) == 0 {
			return model.Page[model.AlbumStatsByArtist]{}, apperr.ErrAlbumStatsNotFound
		}
		return model.NewPage(res.Items, page, size, res.Total), nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}
