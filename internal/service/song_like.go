package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"songapi/internal/apperr"
	"songapi/internal/cache"
	"songapi/internal/model"
	"songapi/internal/repository"
	"songapi/internal/validation"
)

const (
	likeEventKeyPrefix = "song:likes:"
	likeEventTTL       = 2 * time.Hour
)

// LikeEventKey is the per-minute sorted set that collects like and unlike
// events for downstream aggregation.
func LikeEventKey(t time.Time) string {
	return likeEventKeyPrefix + t.Format("200601021504")
}

// SongLikeService records users' likes.
type SongLikeService interface {
	Like(ctx context.Context, songID, userID int64) (*model.SongLikeAck, error)
	Unlike(ctx context.Context, songID, userID int64) (*model.SongLikeAck, error)
}

type songLikeService struct {
	songs  repository.SongRepository
	likes  repository.SongLikeRepository
	cache  cache.Cache
	logger zerolog.Logger
	now    func() time.Time
}

// NewSongLikeService constructs a SongLikeService. now may be nil.
func NewSongLikeService(songs repository.SongRepository, likes repository.SongLikeRepository, c cache.Cache, logger zerolog.Logger, now func() time.Time) SongLikeService {
	return &songLikeService{
		songs:  songs,
		likes:  likes,
		cache:  c,
		logger: logger.With().Str("component", "song_like_service").Logger(),
		now:    orNow(now),
	}
}

func validateLike(songID, userID int64) error {
	return validation.Validate(
		validation.Field("songId", songID, validation.Min(1)),
		validation.Field("userId", userID, validation.Min(1)),
	).Err()
}

func (s *songLikeService) Like(ctx context.Context, songID, userID int64) (*model.SongLikeAck, error) {
	if err := validateLike(songID, userID); err != nil {
		return nil, err
	}

	exists, err := s.likes.Exists(ctx, userID, songID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.ErrSongLikeExists
	}
	if _, err := s.songs.FindByID(ctx, songID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.SongNotFound, err)
		}
		return nil, err
	}

	now := s.now()
	if err := s.likes.Insert(ctx, model.SongLike{UserID: userID, SongID: songID, LikedAt: now.UTC()}); err != nil {
		// A concurrent like of the same pair lost the race.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.SongLikeExists, err)
		}
		return nil, err
	}

	s.afterChange(ctx, "like", songID, userID, now)
	return &model.SongLikeAck{SongID: songID, Message: "like recorded"}, nil
}

func (s *songLikeService) Unlike(ctx context.Context, songID, userID int64) (*model.SongLikeAck, error) {
	if err := validateLike(songID, userID); err != nil {
		return nil, err
	}

	n, err := s.likes.Delete(ctx, userID, songID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, apperr.ErrSongLikeNotExists
	}

	s.afterChange(ctx, "unlike", songID, userID, s.now())
	return &model.SongLikeAck{SongID: songID, Message: "like removed"}, nil
}

// afterChange records the event and evicts the song's cached view. Both are
// best-effort; the like itself is already committed.
func (s *songLikeService) afterChange(ctx context.Context, kind string, songID, userID int64, at time.Time) {
	ms := at.UnixMilli()
	member := fmt.Sprintf("%s:%d:%d:%d", kind, songID, userID, ms)
	if err := s.cache.RecordEvent(ctx, LikeEventKey(at), member, float64(ms), likeEventTTL); err != nil {
		s.logger.Warn().Err(err).Str("event", "like_event_failed").Str("member", member).Msg("like event not recorded")
	}
	evict(ctx, s.cache, s.logger, SongKey(songID))
}
