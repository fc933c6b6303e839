package handler

import (
	"github.com/gofiber/fiber/v2"

	"songapi/internal/service"
	"songapi/internal/validation"
)

// GetSong godoc
// @Summary Get a song
// @Description Returns a song with its artists and like count. Served from the cache when present.
// @Tags songs
// @Produce json
// @Param id path int true "Song ID"
// @Success 200 {object} model.SongDetail
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/songs/{id} [get]
func GetSong(svc service.SongService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vs validation.Violations
		id := intParam(&vs, "id", c.Params("id"), 0)
		if err := vs.Err(); err != nil {
			return err
		}

		song, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(song)
	}
}
