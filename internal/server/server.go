// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"errors"

	"devlink/internal/cache"
	"devlink/internal/config"
	"devlink/internal/database"
	"devlink/internal/github"
	"devlink/internal/middleware"
	"devlink/internal/observability"
	"devlink/internal/repository"
	"devlink/internal/token"
	"devlink/internal/validation"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config      *config.Config
	db          *gorm.DB
	issuer      *token.Issuer
	validate    *validation.Validator
	github      *github.Client
	prom        *fiberprometheus.FiberPrometheus
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db), nil
}

// NewServerWithDeps creates a Server using an already-initialized database.
// Used by tests.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB) *Server {
	return &Server{
		config:      cfg,
		db:          db,
		issuer:      token.NewIssuer(cfg.JWTSecret, cfg.JWTTTL),
		validate:    validation.New(),
		github:      github.NewClient(cfg.GithubToken),
		prom:        observability.HTTPMetrics("devlink-api"),
		userRepo:    repository.NewUserRepository(db),
		profileRepo: repository.NewProfileRepository(db),
		postRepo:    repository.NewPostRepository(db),
	}
}

// SetGithubClient swaps the external lookup client. Used by tests.
func (s *Server) SetGithubClient(c *github.Client) {
	s.github = c
}

// App builds the fiber application with middleware and all routes mounted.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "DevLink API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).SendString(fe.Message)
			}
			observability.GlobalLogger.LogInternalError(c.Path(), err)
			return c.Status(fiber.StatusInternalServerError).SendString("Server Error")
		},
	})

	// Panic recovery
	app.Use(recover.New())

	// Prometheus metrics
	s.prom.RegisterAt(app, "/metrics")
	app.Use(s.prom.Middleware)

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.TokenHeader,
	}))

	s.setupRoutes(app)

	// Serve the built client in production
	if s.config.IsProduction() {
		app.Static("/", s.config.ClientDir)
		app.Get("*", func(c *fiber.Ctx) error {
			return c.SendFile(s.config.ClientDir + "/index.html")
		})
	}

	return app
}
