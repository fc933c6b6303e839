package handler

import (
	"github.com/gofiber/fiber/v2"

	"songapi/internal/service"
	"songapi/internal/validation"
)

// AlbumStatsByYear godoc
// @Summary Album counts per release year
// @Tags albums
// @Produce json
// @Param page query int false "Zero-based page" default(0)
// @Param size query int false "Page size (1-100)" default(10)
// @Success 200 {object} model.Page[model.AlbumStatsByYear]
// @Failure 400 {object} errorPayload
// @Router /api/albums/by-year [get]
func AlbumStatsByYear(svc service.AlbumStatsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vs validation.Violations
		page, size := pageParams(c, &vs)
		if err := vs.Err(); err != nil {
			return err
		}

		res, err := svc.ByYear(c.UserContext(), page, size)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// AlbumStatsByArtist godoc
// @Summary Album counts per release year for one artist
// @Tags albums
// @Produce json
// @Param artist query string true "Artist name"
// @Param page query int false "Zero-based page" default(0)
// @Param size query int false "Page size (1-100)" default(10)
// @Success 200 {object} model.Page[model.AlbumStatsByArtist]
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/albums/by-artist [get]
func AlbumStatsByArtist(svc service.AlbumStatsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vs validation.Violations
		page, size := pageParams(c, &vs)
		if err := vs.Err(); err != nil {
			return err
		}

		res, err := svc.ByArtist(c.UserContext(), c.Query("artist"), page, size)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}
