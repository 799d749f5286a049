package server

import (
	"devlink/internal/gravatar"
	"devlink/internal/models"
	"devlink/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const avatarSize = 200

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /api/users
func (s *Server) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, models.NewValidationError(models.FieldError{Msg: "Invalid request body"}))
	}
	if verr := s.validate.Struct(&req); verr != nil {
		return s.fail(c, verr)
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return s.internalError(c, err)
	}
	if existing != nil {
		return s.fail(c, models.NewConflictError("User already exists"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return s.internalError(c, err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Avatar:   validation.NormalizeURL(gravatar.URL(req.Email, avatarSize)),
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return s.internalError(c, err)
	}

	tok, err := s.issuer.Issue(user.ID)
	if err != nil {
		return s.internalError(c, err)
	}

	return c.JSON(fiber.Map{"token": tok})
}

// Login handles POST /api/auth
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, models.NewValidationError(models.FieldError{Msg: "Invalid request body"}))
	}
	if verr := s.validate.Struct(&req); verr != nil {
		return s.fail(c, verr)
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return s.internalError(c, err)
	}
	if user == nil {
		return s.fail(c, models.NewUnauthorizedError("Invalid credentials"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return s.fail(c, models.NewUnauthorizedError("Invalid credentials"))
	}

	tok, err := s.issuer.Issue(user.ID)
	if err != nil {
		return s.internalError(c, err)
	}

	return c.JSON(fiber.Map{"token": tok})
}

// CurrentUser handles GET /api/auth
func (s *Server) CurrentUser(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.Context(), s.callerID(c))
	if err != nil {
		return s.internalError(c, err)
	}
	if user == nil {
		return s.fail(c, models.NewNotFoundError("User not found"))
	}
	return c.JSON(user)
}
