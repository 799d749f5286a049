package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepos(t *testing.T) {
	const payload = `[{"name":"repo-one"},{"name":"repo-two"}]`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/alice/repos", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		assert.Equal(t, "created:asc", r.URL.Query().Get("sort"))
		assert.Equal(t, "token test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer ts.Close()

	client := NewClientWithBaseURL("test-token", ts.URL)
	body, err := client.Repos(context.Background(), "alice")
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(body))
}

func TestReposNoToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	client := NewClientWithBaseURL("", ts.URL)
	_, err := client.Repos(context.Background(), "alice")
	require.NoError(t, err)
}

func TestReposUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	}))
	defer ts.Close()

	client := NewClientWithBaseURL("test-token", ts.URL)
	_, err := client.Repos(context.Background(), "nobody")
	assert.Error(t, err)
}
