package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"songapi/internal/app"
	"songapi/internal/cache"
	"songapi/internal/config"
	"songapi/internal/database"
	"songapi/internal/database/migration"
	"songapi/internal/logging"
	"songapi/internal/otel"
	"songapi/internal/service"
	"songapi/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// @title Song Aggregator API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := logging.Location(cfg.Timezone)
	logger := logging.New(os.Stdout, cfg.LogLevel, loc)

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Str("event", "config_invalid").Msg("")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, "songapi", logger)
	if err != nil {
		logger.Fatal().Err(err).Str("event", "tracing_init_failed").Msg("")
	}

	store, err := database.Open(ctx, cfg.Database, logging.Component(logger, "database"))
	if err != nil {
		logger.Fatal().Err(err).Str("event", "db_connect_failed").Str("driver", cfg.Database.Driver).Msg("")
	}

	if err := migration.EnsureMigrated(ctx, store, logger, cfg.Database.Host); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := database.RegisterPoolMetrics(reg, store); err != nil {
		logger.Fatal().Err(err).Msg("register pool metrics")
	}

	baseCache := cache.Open(ctx, cfg.Cache.Enabled, cfg.Redis, logging.Component(logger, "cache"))
	if rc, ok := baseCache.(*cache.RedisCache); ok {
		if err := cache.RegisterPoolMetrics(reg, rc); err != nil {
			logger.Fatal().Err(err).Msg("register redis pool metrics")
		}
	}
	c, err := cache.NewInstrumented(baseCache, reg)
	if err != nil {
		logger.Fatal().Err(err).Msg("register cache metrics")
	}

	// Object storage is optional; without it dataset uploads report STORAGE_UNAVAILABLE.
	var objStore storage.Storage
	if cfg.MinIO.Endpoint != "" {
		objStore, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			logger.Fatal().Err(err).Str("event", "storage_init_failed").Msg("")
		}
	}

	a, err := app.New(app.Deps{
		Store:          store,
		Cache:          c,
		Storage:        objStore,
		Logger:         logger,
		Registry:       reg,
		CacheTTL:       cfg.Cache.TTL,
		RequestTimeout: cfg.RequestTimeout,
		IngestFilePath: cfg.Ingest.FilePath,
		Ingestion:      service.IngestionOptions{Parallelism: cfg.Ingest.Parallelism},
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("build app")
	}

	addr := ":" + cfg.Port
	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("event", "server_start").Str("addr", addr).Str("driver", string(store.Dialect())).Msg("")
		serveErr <- a.Fiber.Listen(addr)
	}()

	select {
	case <-ctx.Done():
		logger.Info().Str("event", "server_shutdown").Msg("signal received")
	case err := <-serveErr:
		if err != nil {
			logger.Error().Err(err).Str("event", "server_failed").Msg("")
		}
	}

	if err := a.Fiber.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	a.Ingestion.Wait()

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("tracing shutdown")
	}
	if err := c.Close(); err != nil {
		logger.Error().Err(err).Msg("cache close")
	}
	if err := store.Close(); err != nil {
		logger.Error().Err(err).Msg("store close")
	}
	logger.Info().Str("event", "server_stopped").Msg("")
}
