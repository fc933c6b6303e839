package handler

import (
	"github.com/gofiber/fiber/v2"

	"songapi/internal/service"
	"songapi/internal/validation"
)

// likeRequest is the optional JSON body of like/unlike. The User-Id header
// takes precedence.
type likeRequest struct {
	UserID *int64 `json:"userId"`
}

func likeParams(c *fiber.Ctx) (songID, userID int64, err error) {
	var vs validation.Violations
	songID = intParam(&vs, "songId", c.Params("songId"), 0)

	if raw := c.Get(UserIDHeader); raw != "" {
		userID = intParam(&vs, "userId", raw, 0)
		return songID, userID, vs.Err()
	}

	var body likeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return 0, 0, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	vs = append(vs, validation.Validate(
		validation.Field("userId", body.UserID, validation.Required()),
	)...)
	if body.UserID != nil {
		userID = *body.UserID
	}
	return songID, userID, vs.Err()
}

// LikeSong godoc
// @Summary Like a song
// @Tags likes
// @Produce json
// @Param songId path int true "Song ID"
// @Param User-Id header int true "Acting user"
// @Success 200 {object} CommonResponse[model.SongLikeAck]
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/songs/{songId}/like [post]
func LikeSong(svc service.SongLikeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		songID, userID, err := likeParams(c)
		if err != nil {
			return err
		}
		ack, err := svc.Like(c.UserContext(), songID, userID)
		if err != nil {
			return err
		}
		return success(c, ack)
	}
}

// UnlikeSong godoc
// @Summary Remove a like
// @Tags likes
// @Produce json
// @Param songId path int true "Song ID"
// @Param User-Id header int true "Acting user"
// @Success 200 {object} CommonResponse[model.SongLikeAck]
// @Failure 400 {object} errorPayload
// @Router /api/songs/{songId}/unlike [delete]
func UnlikeSong(svc service.SongLikeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		songID, userID, err := likeParams(c)
		if err != nil {
			return err
		}
		ack, err := svc.Unlike(c.UserContext(), songID, userID)
		if err != nil {
			return err
		}
		return success(c, ack)
	}
}
