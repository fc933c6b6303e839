package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Logger writes one structured entry per request with request_id, method,
// path, status and latency in milliseconds.
//
// Errors returned by the chain are rendered through the app's ErrorHandler
// here so the logged status is the one the client receives. Server errors are
// logged at error level with the cause; 4xx at warn.
func Logger(logger zerolog.Logger) fiber.Handler {
	logger = logger.With().Str("component", "http").Logger()

	return func(c *fiber.Ctx) error {
		start := time.Now()

		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		var evt *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			evt = logger.Error().Err(chainErr)
		case status >= fiber.StatusBadRequest:
			evt = logger.Warn()
		default:
			evt = logger.Info()
		}

		evt.Str("event", "http_request").
			Str("request_id", RequestIDFrom(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000).
			Msg("")

		return nil
	}
}
