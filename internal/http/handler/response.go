package handler

import "github.com/gofiber/fiber/v2"

// CommonResponse is the success envelope for command-style endpoints.
type CommonResponse[T any] struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Payload T      `json:"payload"`
}

func success[T any](c *fiber.Ctx, payload T) error {
	return c.JSON(CommonResponse[T]{
		Success: true,
		Code:    "SUCCESS",
		Message: "request processed successfully",
		Payload: payload,
	})
}
