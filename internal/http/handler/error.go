package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"songapi/internal/apperr"
	"songapi/internal/database"
	"songapi/internal/http/middleware"
	"songapi/internal/validation"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Success   bool          `json:"success"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Status     int                    `json:"status"`
	Path       string                 `json:"path"`
	Violations []validation.Violation `json:"violations,omitempty"`
	Details    any                    `json:"details,omitempty"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, code apperr.ErrorCode, details any) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code.Code,
			Message: code.Message,
			Status:  code.Status,
			Path:    c.Path(),
			Details: details,
		},
	}
	if vs, ok := details.(validation.Violations); ok {
		res.Error.Violations = vs
		res.Error.Details = nil
	}
	return c.Status(code.Status).JSON(res)
}

// ErrorHandler returns a Fiber global error handler that renders every failure
// as an errorPayload. Only catalogue codes and messages reach the client.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, details := translate(err)
		return writeError(c, code, details)
	}
}

func translate(err error) (apperr.ErrorCode, any) {
	var (
		vs       validation.Violations
		appErr   *apperr.Error
		fiberErr *fiber.Error
	)
	switch {
	case errors.As(err, &appErr):
		return appErr.Code, appErr.Details
	case errors.As(err, &vs):
		return apperr.ValidationFailed, vs
	case errors.As(err, &fiberErr):
		return fiberCode(fiberErr.Code), nil
	case errors.Is(err, database.ErrPoolExhausted), errors.Is(err, database.ErrUnavailable):
		return apperr.ServiceUnavailable, nil
	case errors.Is(err, database.ErrTimeout), errors.Is(err, database.ErrCanceled),
		errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apperr.RequestTimeout, nil
	}
	return apperr.InternalServerError, nil
}

func fiberCode(status int) apperr.ErrorCode {
	switch status {
	case fiber.StatusBadRequest:
		return apperr.ErrorCode{Status: status, Code: "BAD_REQUEST", Message: "bad request"}
	case fiber.StatusNotFound:
		return apperr.ErrorCode{Status: status, Code: "NOT_FOUND", Message: "resource not found"}
	case fiber.StatusMethodNotAllowed:
		return apperr.ErrorCode{Status: status, Code: "METHOD_NOT_ALLOWED", Message: "method not allowed"}
	case fiber.StatusUnsupportedMediaType:
		return apperr.ErrorCode{Status: status, Code: "UNSUPPORTED_MEDIA_TYPE", Message: "unsupported content type"}
	case fiber.StatusRequestEntityTooLarge:
		return apperr.ErrorCode{Status: status, Code: "PAYLOAD_TOO_LARGE", Message: "request body too large"}
	case fiber.StatusRequestTimeout:
		return apperr.RequestTimeout
	case fiber.StatusServiceUnavailable:
		return apperr.ServiceUnavailable
	}
	if status >= fiber.StatusBadRequest && status < fiber.StatusInternalServerError {
		return apperr.ErrorCode{Status: status, Code: "BAD_REQUEST", Message: "bad request"}
	}
	return apperr.InternalServerError
}
