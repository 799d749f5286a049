package server

import (
	"devlink/internal/middleware"
	"devlink/internal/models"
	"devlink/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// fail writes the HTTP response for an application error. Each error code
// owns exactly one status; internal errors are logged and surfaced as a
// bare "Server Error" with no detail.
func (s *Server) fail(c *fiber.Ctx, err *models.AppError) error {
	switch err.Code {
	case models.CodeInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": err.Fields})
	case models.CodeNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": err.Message})
	case models.CodeUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": err.Message})
	case models.CodeForbidden:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"msg": err.Message})
	case models.CodeConflict:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": err.Message})
	default:
		observability.GlobalLogger.LogInternalError(c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).SendString("Server Error")
	}
}

// internalError is sugar for failing with a wrapped unexpected error.
func (s *Server) internalError(c *fiber.Ctx, err error) error {
	return s.fail(c, models.NewInternalError(err))
}

// callerID returns the identity the auth gate attached to the request.
func (s *Server) callerID(c *fiber.Ctx) uint {
	return middleware.UserID(c)
}

// parseUintParam extracts a positive integer route parameter. A malformed
// identifier is reported as not-found rather than crashing the lookup.
func parseUintParam(c *fiber.Ctx, name string) (uint, bool) {
	v, err := c.ParamsInt(name)
	if err != nil || v <= 0 {
		return 0, false
	}
	return uint(v), true
}
