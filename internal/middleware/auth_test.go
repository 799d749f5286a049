package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"devlink/internal/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProtectedApp(issuer *token.Issuer, handlerCalls *int) *fiber.App {
	app := fiber.New()
	app.Get("/private", AuthRequired(issuer), func(c *fiber.Ctx) error {
		*handlerCalls++
		return c.JSON(fiber.Map{"user": UserID(c)})
	})
	return app
}

func TestAuthRequired_MissingToken(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	calls := 0
	app := setupProtectedApp(issuer, &calls)

	req := httptest.NewRequest("GET", "/private", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, calls, "handler must not run without a token")
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	calls := 0
	app := setupProtectedApp(issuer, &calls)

	for _, raw := range []string{"garbage", "a.b.c"} {
		req := httptest.NewRequest("GET", "/private", nil)
		req.Header.Set(TokenHeader, raw)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}
	assert.Zero(t, calls)
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	expired := token.NewIssuer("test-secret", -time.Minute)
	raw, err := expired.Issue(7)
	require.NoError(t, err)

	calls := 0
	app := setupProtectedApp(token.NewIssuer("test-secret", time.Hour), &calls)

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set(TokenHeader, raw)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, calls)
}

func TestAuthRequired_ValidToken(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	raw, err := issuer.Issue(7)
	require.NoError(t, err)

	calls := 0
	app := setupProtectedApp(issuer, &calls)

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set(TokenHeader, raw)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestUserID_Unauthenticated(t *testing.T) {
	app := fiber.New()
	app.Get("/public", func(c *fiber.Ctx) error {
		assert.Zero(t, UserID(c))
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/public", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
