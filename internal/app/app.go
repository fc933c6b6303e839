// Package app is the composition root: it turns explicit dependencies into a
// ready-to-serve Fiber application.
package app

import (
	"fmt"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"songapi/internal/cache"
	"songapi/internal/database"
	handlers "songapi/internal/http/handler"
	"songapi/internal/http/middleware"
	"songapi/internal/repository/postgres"
	"songapi/internal/service"
	"songapi/internal/storage"
)

// Deps are the process-wide resources the application is built from. The
// caller owns them and closes them after shutdown.
type Deps struct {
	Store   database.Store
	Cache   cache.Cache
	Storage storage.Storage // nil disables dataset uploads

	Logger zerolog.Logger
	// Registry receives the HTTP metrics and is served on /metrics.
	Registry *prometheus.Registry

	CacheTTL       time.Duration
	RequestTimeout time.Duration
	IngestFilePath string
	Ingestion      service.IngestionOptions
	// Now overrides the clock used for like timestamps.
	Now func() time.Time
}

// App is a wired application.
type App struct {
	Fiber     *fiber.App
	Ingestion service.IngestionService
}

// New builds repositories, services and HTTP routes from d.
func New(d Deps) (*App, error) {
	if d.Store == nil {
		return nil, fmt.Errorf("app: store is required")
	}
	if d.Cache == nil {
		d.Cache = cache.Nop{}
	}
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}

	songs := postgres.NewSongPostgres(d.Store)
	artists := postgres.NewArtistPostgres(d.Store)
	links := postgres.NewSongArtistPostgres(d.Store)
	likes := postgres.NewSongLikePostgres(d.Store)
	stats := postgres.NewAlbumStatsPostgres(d.Store)

	ingestion := service.NewIngestionService(songs, artists, links, d.Storage, d.Ingestion, d.Logger)

	prom, err := middleware.NewPrometheusMiddleware(d.Registry)
	if err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}

	f := fiber.New(fiber.Config{
		AppName:      "songapi",
		ErrorHandler: handlers.ErrorHandler(),
	})
	f.Use(middleware.RequestID())
	f.Use(otelfiber.Middleware())
	f.Use(prom.Handler())
	f.Use(middleware.Logger(d.Logger))
	f.Use(middleware.Recover(d.Logger))

	handlers.RegisterRoutes(f, handlers.Routes{
		DB:             d.Store,
		Cache:          d.Cache,
		Songs:          service.NewSongService(songs, artists, likes, d.Cache, d.CacheTTL, d.Logger),
		Likes:          service.NewSongLikeService(songs, likes, d.Cache, d.Logger, d.Now),
		Albums:         service.NewAlbumStatsService(stats, d.Cache, d.CacheTTL, d.Logger),
		Ingestion:      ingestion,
		IngestFilePath: d.IngestFilePath,
		RequestTimeout: d.RequestTimeout,
		Metrics:        d.Registry,
	})

	return &App{Fiber: f, Ingestion: ingestion}, nil
}
