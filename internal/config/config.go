package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Database driver selectors for DatabaseConfig.Driver.
const (
	DriverPgx = "pgx" // pgxpool, the primary path
	DriverSQL = "sql" // database/sql over the pgx stdlib driver
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Driver             string `validate:"oneof=pgx sql"`
	Host               string `validate:"required"`
	Port               string `validate:"required,numeric"`
	User               string `validate:"required"`
	Password           string
	Name               string `validate:"required"`
	SSLMode            string
	MaxOpenConns       int `validate:"gte=1"`
	MaxIdleConns       int `validate:"gte=0"`
	ConnMaxLifetimeSec int `validate:"gte=0"`
	// AcquireTimeout bounds how long a query waits for a free pool slot
	// before failing with database.ErrPoolExhausted. Zero waits for the
	// request context only.
	AcquireTimeout time.Duration `validate:"gte=0"`
}

// RedisConfig holds cache connection settings.
type RedisConfig struct {
	Addr        string `validate:"required"`
	Password    string
	DB          int           `validate:"gte=0"`
	PoolSize    int           `validate:"gte=1"`
	PoolTimeout time.Duration `validate:"gte=0"`
}

// CacheConfig controls read-through caching of query results.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration `validate:"gte=0"`
}

// MinIOConfig holds object storage settings for uploaded datasets.
// An empty Endpoint disables dataset uploads.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// IngestConfig holds song ingestion settings.
type IngestConfig struct {
	FilePath    string
	Parallelism int `validate:"gte=1"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost        string
	Port           string `validate:"required,numeric"`
	Timezone       string
	LogLevel       string        `validate:"oneof=trace debug info warn error"`
	RequestTimeout time.Duration `validate:"gte=0"`
	Database       DatabaseConfig
	Redis          RedisConfig
	Cache          CacheConfig
	MinIO          MinIOConfig
	Ingest         IngestConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:        getEnv("APP_HOST", "localhost:8080"),
		Port:           getEnv("PORT", "8080"),
		Timezone:       getEnv("APP_TIMEZONE", "UTC"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		Database: DatabaseConfig{
			Driver:             getEnv("DB_DRIVER", DriverPgx),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			AcquireTimeout:     getEnvDuration("DB_ACQUIRE_TIMEOUT", 2*time.Second),
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", "localhost:6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvInt("REDIS_DB", 0),
			PoolSize:    getEnvInt("REDIS_POOL_SIZE", 10),
			PoolTimeout: getEnvDuration("REDIS_POOL_TIMEOUT", time.Second),
		},
		Cache: CacheConfig{
			Enabled: getEnvBool("CACHE_ENABLED", true),
			TTL:     getEnvDuration("CACHE_TTL", time.Minute),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Ingest: IngestConfig{
			FilePath:    getEnv("INGEST_FILE_PATH", "data/songs.ndjson"),
			Parallelism: getEnvInt("INGEST_PARALLELISM", 10),
		},
	}
}

// Validate checks the loaded configuration for values the service cannot start with.
func (c *AppConfig) Validate() error {
	return validator.New().Struct(c)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
