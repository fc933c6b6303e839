package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"songapi/internal/apperr"
)

// Timeout gives each request a context deadline of d. Store and cache calls
// made with c.UserContext() are canceled when it passes, and the failure is
// reported as REQUEST_TIMEOUT. A non-positive d disables the deadline.
func Timeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return apperr.New(apperr.RequestTimeout, err)
		}
		return err
	}
}
