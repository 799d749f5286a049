package server

import (
	"devlink/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) setupRoutes(app *fiber.App) {
	auth := middleware.AuthRequired(s.issuer)

	api := app.Group("/api")

	// Registration
	api.Post("/users", s.Register)

	// Authentication
	api.Post("/auth", s.Login)
	api.Get("/auth", auth, s.CurrentUser)

	// Profiles
	profile := api.Group("/profile")
	profile.Get("/me", auth, s.MyProfile)
	profile.Post("/", auth, s.UpsertProfile)
	profile.Get("/", s.ListProfiles)
	profile.Get("/user/:user_id", s.ProfileByUserID)
	profile.Delete("/", auth, s.DeleteAccount)
	profile.Put("/experience", auth, s.AddExperience)
	profile.Delete("/experience/:exp_id", auth, s.DeleteExperience)
	profile.Put("/education", auth, s.AddEducation)
	profile.Delete("/education/:edu_id", auth, s.DeleteEducation)
	profile.Get("/github/:username", s.GithubRepos)

	// Posts
	post := api.Group("/post")
	post.Post("/", auth, s.CreatePost)
	post.Get("/", auth, s.ListPosts)
	post.Get("/:id", auth, s.GetPost)
	post.Delete("/:id", auth, s.DeletePost)
	post.Put("/like/:id", auth, s.LikePost)
	post.Put("/unlike/:id", auth, s.UnlikePost)
	post.Post("/comment/:id", auth, s.AddComment)
	post.Delete("/comment/:id/:comment_id", auth, s.DeleteComment)
}
