package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"devlink/internal/github"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGithubRepos_PassThrough(t *testing.T) {
	const payload = `[{"name":"devlink"}]`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/alice/repos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer ts.Close()

	srv, app := setupTestServer(t)
	srv.SetGithubClient(github.NewClientWithBaseURL("", ts.URL))

	resp := doJSON(t, app, "GET", "/api/profile/github/alice", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(body))
}

func TestGithubRepos_UpstreamFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	}))
	defer ts.Close()

	srv, app := setupTestServer(t)
	srv.SetGithubClient(github.NewClientWithBaseURL("", ts.URL))

	resp := doJSON(t, app, "GET", "/api/profile/github/nobody", "", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Server Error", string(body))
}
