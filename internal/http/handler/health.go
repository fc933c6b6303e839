package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"songapi/internal/apperr"
)

const healthTimeout = 2 * time.Second

// Pinger is a dependency whose reachability /health reports.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck pings the database and the cache. A database failure is a 503;
// a cache failure only degrades the service because reads fall back to the
// database.
func HealthCheck(db, cache Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			return writeError(c, apperr.ServiceUnavailable, fiber.Map{"database": "down"})
		}

		status, cacheStatus := "healthy", "up"
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				status, cacheStatus = "degraded", "down"
			}
		}
		return c.JSON(fiber.Map{"status": status, "database": "up", "cache": cacheStatus})
	}
}

// LivenessProbe reports that the process is serving.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
