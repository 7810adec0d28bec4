package server

import (
	"errors"
	"time"

	"moodboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseTime reads an optional RFC 3339 query parameter.
func parseTime(c *fiber.Ctx, param string) (time.Time, error) {
	raw := c.Query(param)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, models.NewValidationError("Invalid " + param + ": expected RFC 3339 time")
	}
	return t, nil
}

// statusFor maps an error's AppError code to an HTTP status.
func statusFor(err error) int {
	switch models.ErrorCode(err) {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeDisabled:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusFor(err), err)
}

// requireFlag rejects requests when a feature flag is off for the client.
func (s *Server) requireFlag(flag string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.featureFlags.EnabledFor(flag, c.IP()) {
			return respondError(c, models.NewDisabledError(flag))
		}
		return c.Next()
	}
}
