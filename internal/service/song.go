package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"songapi/internal/apperr"
	"songapi/internal/cache"
	"songapi/internal/model"
	"songapi/internal/repository"
	"songapi/internal/validation"
)

// SongService serves song reads through the cache.
type SongService interface {
	// Get returns the song with its artists and like count. Results are
	// cached under SongKey(id) for the configured TTL.
	Get(ctx context.Context, id int64) (*model.SongDetail, error)
}

type songService struct {
	songs   repository.SongRepository
	artists repository.ArtistRepository
	likes   repository.SongLikeRepository
	cache   cache.Cache
	ttl     time.Duration
	logger  zerolog.Logger
}

// NewSongService constructs a new SongService.
func NewSongService(
	songs repository.SongRepository,
	artists repository.ArtistRepository,
	likes repository.SongLikeRepository,
	c cache.Cache,
	ttl time.Duration,
	logger zerolog.Logger,
) SongService {
	return &songService{
		songs:   songs,
		artists: artists,
		likes:   likes,
		cache:   c,
		ttl:     ttl,
		logger:  logger.With().Str("component", "song_service").Logger(),
	}
}

func (s *songService) Get(ctx context.Context, id int64) (*model.SongDetail, error) {
	if err := validation.Validate(validation.Field("id", id, validation.Min(1))).Err(); err != nil {
		return nil, err
	}

	detail, err := cache.ReadThrough(ctx, s.cache, s.logger, SongKey(id), s.ttl, func(ctx context.Context) (model.SongDetail, error) {
		return s.load(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *songService) load(ctx context.Context, id int64) (model.SongDetail, error) {
	song, err := s.songs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.SongDetail{}, apperr.New(apperr.SongNotFound, err)
		}
		return model.SongDetail{}, err
	}
	artists, err := s.artists.ListBySong(ctx, id)
	if err != nil {
		return model.SongDetail{}, err
	}
	likes, err := s.likes.CountBySong(ctx, id)
	if err != nil {
		return model.SongDetail{}, err
	}
	return model.SongDetail{Song: *song, Artists: artists, LikeCount: likes}, nil
}
