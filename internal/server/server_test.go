package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devlink/internal/config"
	"devlink/internal/database"
	"devlink/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestServer creates a server backed by an in-memory SQLite database.
func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	cfg := &config.Config{
		Port:      "0",
		JWTSecret: "test-secret-key",
		JWTTTL:    time.Hour,
		Env:       "test",
	}

	srv := NewServerWithDeps(cfg, db)
	return srv, srv.App()
}

// doJSON performs a request with a JSON body and optional auth token.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decode unmarshals the response body into dest.
func decode(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, dest), "body: %s", body)
}

// registerUser registers an account and returns its access token.
func registerUser(t *testing.T, app *fiber.App, name, email string) string {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/users", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decode(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestUnhandledPanicReturnsServerError(t *testing.T) {
	_, app := setupTestServer(t)
	app.Get("/explode", func(c *fiber.Ctx) error {
		panic("unexpected failure")
	})

	resp := doJSON(t, app, "GET", "/explode", "", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Server Error", string(body))
}

func TestMetricsEndpoint(t *testing.T) {
	_, app := setupTestServer(t)

	resp := doJSON(t, app, "GET", "/api/profile", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/metrics", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "http_requests_total")
}

// createProfile creates a minimal profile for the token's user.
func createProfile(t *testing.T, app *fiber.App, token string) {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/profile", token, map[string]any{
		"status": "Developer",
		"skills": []string{"Go"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
