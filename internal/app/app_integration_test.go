//go:build integration

package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"songapi/internal/cache"
	"songapi/internal/config"
	"songapi/internal/database"
	"songapi/internal/database/migration"
	"songapi/internal/repository/postgres"
	"songapi/internal/service"
)

func startPostgres(t *testing.T) config.DatabaseConfig {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("songs"),
		tcpostgres.WithUsername("songs"),
		tcpostgres.WithPassword("songs"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return config.DatabaseConfig{
		Host:               host,
		Port:               port.Port(),
		User:               "songs",
		Password:           "songs",
		Name:               "songs",
		SSLMode:            "disable",
		MaxOpenConns:       4,
		MaxIdleConns:       2,
		ConnMaxLifetimeSec: 60,
		AcquireTimeout:     2 * time.Second,
	}
}

func startRedis(t *testing.T) config.RedisConfig {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	addr, err := ctr.Endpoint(ctx, "")
	require.NoError(t, err)
	return config.RedisConfig{Addr: addr, PoolSize: 4, PoolTimeout: time.Second}
}

func TestIntegration_Postgres(t *testing.T) {
	dbCfg := startPostgres(t)
	redisCfg := startRedis(t)

	path := filepath.Join(t.TempDir(), "songs.ndjson")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o600))

	for _, driver := range []string{config.DriverPgx, config.DriverSQL} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			dbCfg.Driver = driver

			store, err := database.Open(ctx, dbCfg, zerolog.Nop())
			require.NoError(t, err)
			t.Cleanup(func() { _ = store.Close() })
			require.NoError(t, migration.EnsureMigrated(ctx, store, zerolog.Nop(), dbCfg.Host))

			rc, err := cache.NewRedis(ctx, redisCfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = rc.Close() })

			a, err := New(Deps{
				Store:          store,
				Cache:          rc,
				Logger:         zerolog.Nop(),
				CacheTTL:       time.Minute,
				RequestTimeout: 5 * time.Second,
				IngestFilePath: path,
				Ingestion:      service.IngestionOptions{Parallelism: 4},
			})
			require.NoError(t, err)

			resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/songs/ingest", nil), 10000)
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			a.Ingestion.Wait()

			song, err := postgres.NewSongPostgres(store).FindByISRCAndTitle(ctx, "USA1", "First")
			require.NoError(t, err)

			resp, err = a.Fiber.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/songs/%d", song.ID), nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			resp, err = a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/albums/by-year", nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			resp, err = a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}
