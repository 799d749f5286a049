// Package middleware provides authentication middleware for the application.
package middleware

import (
	"fmt"

	"devlink/internal/observability"
	"devlink/internal/token"

	"github.com/gofiber/fiber/v2"
)

// TokenHeader is the request header carrying the access token.
const TokenHeader = "x-auth-token"

// localsUserID is the fiber locals key under which the verified identity is stored.
const localsUserID = "userID"

// AuthRequired returns a middleware enforcing authentication for protected
// routes. Exactly three terminal outcomes exist: 401 when the header is
// absent, 401 when the token fails verification, 500 on an unexpected
// verifier failure. Otherwise the verified identity is attached to the
// request and the chain continues.
func AuthRequired(issuer *token.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				observability.GlobalLogger.LogInternalError(c.Path(), fmt.Errorf("auth middleware panic: %v", r))
				err = c.Status(fiber.StatusInternalServerError).SendString("Server Error")
			}
		}()

		raw := c.Get(TokenHeader)
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"msg": "No token, authorization denied",
			})
		}

		userID, verr := issuer.Verify(raw)
		if verr != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"msg": "Token is not valid",
			})
		}

		c.Locals(localsUserID, userID)
		return c.Next()
	}
}

// UserID returns the verified identity attached by AuthRequired, or 0 when
// the request did not pass through it.
func UserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(localsUserID).(uint); ok {
		return id
	}
	return 0
}
