package service

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"songapi/internal/apperr"
	"songapi/internal/model"
	"songapi/internal/repository"
	"songapi/internal/storage"
)

const maxLineBytes = 1 << 20

// IngestionService loads NDJSON song datasets into the store.
type IngestionService interface {
	// Ingest reads one JSON object per line from r. Unparsable lines are
	// skipped. Records that fail to save are counted as failures and retried
	// in the background.
	Ingest(ctx context.Context, r io.Reader) (*model.IngestionResult, error)

	// IngestFile ingests the dataset at path.
	IngestFile(ctx context.Context, path string) (*model.IngestionResult, error)

	// IngestDataset uploads r to object storage, then ingests the stored copy.
	IngestDataset(ctx context.Context, filename string, r io.Reader, size int64) (*model.IngestionResult, error)

	// Wait blocks until background retries have finished.
	Wait()
}

// IngestionOptions tunes an IngestionService. Zero values select defaults.
type IngestionOptions struct {
	Parallelism int
	// RetryInterval is the first backoff delay of a dead-letter retry.
	RetryInterval time.Duration
	// MaxTries is how many times a dead-lettered record is retried after its
	// first failure.
	MaxTries uint
}

func (o IngestionOptions) withDefaults() IngestionOptions {
	if o.Parallelism <= 0 {
		o.Parallelism = 10
	}
	if o.RetryInterval <= 0 {
		o.RetryInterval = time.Second
	}
	if o.MaxTries == 0 {
		o.MaxTries = 2
	}
	return o
}

type ingestionService struct {
	songs   repository.SongRepository
	artists repository.ArtistRepository
	links   repository.SongArtistRepository
	store   storage.Storage
	opts    IngestionOptions
	logger  zerolog.Logger
	retries sync.WaitGroup
}

// NewIngestionService constructs an IngestionService. store may be nil, in
// which case IngestDataset reports STORAGE_UNAVAILABLE.
func NewIngestionService(
	songs repository.SongRepository,
	artists repository.ArtistRepository,
	links repository.SongArtistRepository,
	store storage.Storage,
	opts IngestionOptions,
	logger zerolog.Logger,
) IngestionService {
	return &ingestionService{
		songs:   songs,
		artists: artists,
		links:   links,
		store:   store,
		opts:    opts.withDefaults(),
		logger:  logger.With().Str("component", "ingestion").Logger(),
	}
}

func (s *ingestionService) Ingest(ctx context.Context, r io.Reader) (*model.IngestionResult, error) {
	start := time.Now()
	s.logger.Info().Str("event", "ingestion_start").Str("status", "in_progress").Msg("")

	var (
		success atomic.Int64
		mu      sync.Mutex
		dlq     []model.SongWithArtists
	)

	g := new(errgroup.Group)
	g.SetLimit(s.opts.Parallelism)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for sc.Scan() {
		if ctx.Err() != nil {
			break
		}
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		swa, err := parseSongLine(line)
		if err != nil {
			s.logger.Warn().Err(err).Str("event", "ingestion_line_skipped").Int("line", lineNo).Msg("unparsable line")
			continue
		}
		g.Go(func() error {
			if err := s.save(ctx, swa); err != nil {
				s.logger.Warn().Err(err).
					Str("event", "ingestion_record_failed").
					Str("isrc", swa.Song.ISRC).
					Msg("record moved to dead-letter queue")
				mu.Lock()
				dlq = append(dlq, *swa)
				mu.Unlock()
				return nil
			}
			success.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	result := &model.IngestionResult{SuccessCount: int(success.Load()), FailureCount: len(dlq)}
	s.logger.Info().
		Str("event", "ingestion_done").
		Str("status", "success").
		Int("success_count", result.SuccessCount).
		Int("failure_count", result.FailureCount).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("")

	s.retryDeadLetters(context.WithoutCancel(ctx), dlq)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("ingestion interrupted: %w", err)
	}
	if err := sc.Err(); err != nil {
		return result, apperr.New(apperr.SongIngestionError, fmt.Errorf("read dataset: %w", err))
	}
	return result, nil
}

// save stores the song, its artists and their links. Rows that already exist
// are looked up instead of inserted.
func (s *ingestionService) save(ctx context.Context, swa *model.SongWithArtists) error {
	song, err := s.songs.Insert(ctx, &swa.Song)
	if errors.Is(err, repository.ErrDuplicate) {
		s.logger.Debug().Str("isrc", swa.Song.ISRC).Str("title", swa.Song.Title).Msg("duplicate song, linking existing row")
		song, err = s.songs.FindByISRCAndTitle(ctx, swa.Song.ISRC, swa.Song.Title)
	}
	if err != nil {
		return fmt.Errorf("save song %s: %w", swa.Song.ISRC, err)
	}

	for _, name := range swa.Artists {
		artist, err := s.artists.Insert(ctx, name)
		if errors.Is(err, repository.ErrDuplicate) {
			artist, err = s.artists.FindByName(ctx, name)
		}
		if err != nil {
			return fmt.Errorf("save artist %q: %w", name, err)
		}
		if err := s.links.Link(ctx, song.ID, artist.ID); err != nil {
			return fmt.Errorf("link song %d to artist %d: %w", song.ID, artist.ID, err)
		}
	}
	return nil
}

// retryDeadLetters retries failed records in the background with exponential
// backoff. Records still failing after MaxTries are logged and dropped.
func (s *ingestionService) retryDeadLetters(ctx context.Context, dlq []model.SongWithArtists) {
	if len(dlq) == 0 {
		return
	}
	s.retries.Add(1)
	go func() {
		defer s.retries.Done()
		recovered := 0
		for i := range dlq {
			swa := &dlq[i]
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = s.opts.RetryInterval
			_, err := backoff.Retry(ctx, func() (struct{}, error) {
				return struct{}{}, s.save(ctx, swa)
			}, backoff.WithBackOff(b), backoff.WithMaxTries(s.opts.MaxTries))
			if err != nil {
				s.logger.Error().Err(err).
					Str("event", "dead_letter_retry_failed").
					Str("isrc", swa.Song.ISRC).
					Msg("")
				continue
			}
			recovered++
		}
		s.logger.Info().
			Str("event", "dead_letter_retry_done").
			Int("recovered", recovered).
			Int("dropped", len(dlq)-recovered).
			Msg("")
	}()
}

func (s *ingestionService) IngestFile(ctx context.Context, path string) (*model.IngestionResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.New(apperr.SongIngestionError, fmt.Errorf("open dataset: %w", err))
	}
	defer f.Close()
	return s.Ingest(ctx, f)
}

func (s *ingestionService) IngestDataset(ctx context.Context, filename string, r io.Reader, size int64) (*model.IngestionResult, error) {
	if s.store == nil {
		return nil, apperr.ErrStorageUnavailable
	}

	key := storage.DatasetKey(uuid.New().String(), filepath.Base(filename))
	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: "application/x-ndjson",
		Metadata:    map[string]string{"original-filename": filename},
	}); err != nil {
		return nil, apperr.New(apperr.SongIngestionError, fmt.Errorf("upload dataset: %w", err))
	}

	rc, _, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, apperr.New(apperr.SongIngestionError, fmt.Errorf("read stored dataset: %w", err))
	}
	defer rc.Close()

	s.logger.Info().Str("event", "dataset_stored").Str("key", key).Msg("")
	return s.Ingest(ctx, rc)
}

func (s *ingestionService) Wait() {
	s.retries.Wait()
}
