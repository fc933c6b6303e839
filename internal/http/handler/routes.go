package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"songapi/docs"
	"songapi/internal/http/middleware"
	"songapi/internal/service"
)

// Routes lists what RegisterRoutes serves.
type Routes struct {
	DB    Pinger
	Cache Pinger

	Songs     service.SongService
	Likes     service.SongLikeService
	Albums    service.AlbumStatsService
	Ingestion service.IngestionService

	// IngestFilePath is the dataset read by GET /api/songs/ingest.
	IngestFilePath string
	// RequestTimeout bounds query endpoints. Ingestion runs without it.
	RequestTimeout time.Duration
	// Metrics is exposed on /metrics when set.
	Metrics prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, r Routes) {
	app.Get("/health", HealthCheck(r.DB, r.Cache))
	app.Get("/healthz", LivenessProbe())

	if r.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(r.Metrics, promhttp.HandlerOpts{})))
	}

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	api := app.Group("/api")

	// Registered ahead of the timed group: ingestion runs without the request
	// deadline, and "ingest" must not be read as a song id.
	ingest := api.Group("/songs")
	ingest.Get("/ingest", IngestSongs(r.Ingestion, r.IngestFilePath))
	ingest.Post("/datasets", UploadDataset(r.Ingestion))

	timed := middleware.Timeout(r.RequestTimeout)

	songs := api.Group("/songs", timed)
	songs.Get("/:id", GetSong(r.Songs))
	songs.Post("/:songId/like", LikeSong(r.Likes))
	songs.Delete("/:songId/unlike", UnlikeSong(r.Likes))

	albums := api.Group("/albums", timed)
	albums.Get("/by-year", AlbumStatsByYear(r.Albums))
	albums.Get("/by-artist", AlbumStatsByArtist(r.Albums))
}
