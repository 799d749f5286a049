package server

import (
	"encoding/json"

	"devlink/internal/cache"

	"github.com/gofiber/fiber/v2"
)

// GithubRepos handles GET /api/profile/github/:username: proxies the
// external repository listing and passes the body through unmodified.
// Responses are cached briefly when Redis is configured.
func (s *Server) GithubRepos(c *fiber.Ctx) error {
	username := c.Params("username")

	var body json.RawMessage
	err := cache.Aside(c.Context(), cache.GithubKey(username), &body, cache.GithubTTL, func() error {
		var ferr error
		body, ferr = s.github.Repos(c.Context(), username)
		return ferr
	})
	if err != nil {
		return s.internalError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
