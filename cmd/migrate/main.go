// Command migrate applies the schema and exits. It always uses the blocking
// database/sql path.
package main

import (
	"context"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"songapi/internal/config"
	"songapi/internal/database"
	"songapi/internal/database/migration"
	"songapi/internal/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel, logging.Location(cfg.Timezone))

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Str("event", "config_invalid").Msg("")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg.Database.Driver = config.DriverSQL
	store, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("event", "db_connect_failed").Msg("")
	}
	defer store.Close()

	if err := migration.EnsureMigrated(ctx, store, logger, cfg.Database.Host); err != nil {
		logger.Error().Err(err).Msg("migration failed")
		_ = store.Close()
		os.Exit(1)
	}
}
