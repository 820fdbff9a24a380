package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"transcribe/internal/adapter"
	"transcribe/internal/http/middleware"
	"transcribe/internal/logging"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeAdapterError maps adapter and service errors onto HTTP responses.
// Unexpected errors are logged and reported as 500.
func writeAdapterError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, adapter.ErrPageNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "page not found")
	case errors.Is(err, adapter.ErrDocumentNotFound), errors.Is(err, adapter.ErrNoPages):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, adapter.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	case errors.Is(err, adapter.ErrInvalidProgress):
		return writeError(c, fiber.StatusBadRequest, "INVALID_PROGRESS", "progress must be an integer between 0 and 100")
	case errors.Is(err, adapter.ErrInvalidSortWeight):
		return writeError(c, fiber.StatusBadRequest, "INVALID_SORT_WEIGHT", "sort weight must be between 0 and 999999999")
	default:
		logging.FromContext(c.UserContext()).Error("request_failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
