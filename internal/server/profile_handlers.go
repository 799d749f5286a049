package server

import (
	"encoding/json"
	"strings"
	"time"

	"devlink/internal/cache"
	"devlink/internal/models"
	"devlink/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

// skillList accepts either a JSON array of strings or a single
// comma-separated string on the wire.
type skillList []string

func (s *skillList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*s = arr
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*s = out
	return nil
}

type upsertProfileRequest struct {
	Company        string    `json:"company"`
	Website        string    `json:"website"`
	Location       string    `json:"location"`
	Status         string    `json:"status" validate:"required"`
	Skills         skillList `json:"skills" validate:"required,min=1"`
	Bio            string    `json:"bio"`
	GithubUsername string    `json:"github_username"`
	Youtube        string    `json:"youtube"`
	Twitter        string    `json:"twitter"`
	Facebook       string    `json:"facebook"`
	Linkedin       string    `json:"linkedin"`
	Instagram      string    `json:"instagram"`
}

type experienceRequest struct {
	Title       string     `json:"title" validate:"required"`
	Company     string     `json:"company" validate:"required"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from" validate:"required"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type educationRequest struct {
	School       string     `json:"school" validate:"required"`
	Degree       string     `json:"degree" validate:"required"`
	FieldOfStudy string     `json:"fieldofstudy" validate:"required"`
	From         time.Time  `json:"from" validate:"required"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

// MyProfile handles GET /api/profile/me
func (s *Server) MyProfile(c *fiber.Ctx) error {
	profile, err := s.profileRepo.GetByUserID(c.Context(), s.callerID(c))
	if err != nil {
		return s.internalError(c, err)
	}
	if profile == nil {
		return s.fail(c, models.NewNotFoundError("There is no profile for this user"))
	}
	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile: create-if-absent, else overwrite.
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req upsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, models.NewValidationError(models.FieldError{Msg: "Invalid request body"}))
	}
	if verr := s.validate.Struct(&req); verr != nil {
		return s.fail(c, verr)
	}

	profile := &models.Profile{
		UserID:         s.callerID(c),
		Company:        req.Company,
		Website:        validation.NormalizeURL(req.Website),
		Location:       req.Location,
		Status:         req.Status,
		Skills:         pq.StringArray(req.Skills),
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social: models.SocialLinks{
			Youtube:   validation.NormalizeURL(req.Youtube),
			Twitter:   validation.NormalizeURL(req.Twitter),
			Facebook:  validation.NormalizeURL(req.Facebook),
			Linkedin:  validation.NormalizeURL(req.Linkedin),
			Instagram: validation.NormalizeURL(req.Instagram),
		},
	}

	saved, err := s.profileRepo.Upsert(c.Context(), profile)
	if err != nil {
		return s.internalError(c, err)
	}

	cache.Invalidate(c.Context(), cache.ProfileListKey())
	return c.JSON(saved)
}

// ListProfiles handles GET /api/profile
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	var profiles []*models.Profile
	err := cache.Aside(c.Context(), cache.ProfileListKey(), &profiles, cache.ProfileListTTL, func() error {
		var ferr error
		profiles, ferr = s.profileRepo.List(c.Context())
		return ferr
	})
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(profiles)
}

// ProfileByUserID handles GET /api/profile/user/:user_id
func (s *Server) ProfileByUserID(c *fiber.Ctx) error {
	userID, ok := parseUintParam(c, "user_id")
	if !ok {
		return s.fail(c, models.NewNotFoundError("Profile not found"))
	}

	profile, err := s.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		return s.internalError(c, err)
	}
	if profile == nil {
		return s.fail(c, models.NewNotFoundError("Profile not found"))
	}
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile: removes the caller's profile
// and user record. Posts are intentionally left in place.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID := s.callerID(c)

	if err := s.profileRepo.DeleteByUserID(c.Context(), userID); err != nil {
		return s.internalError(c, err)
	}
	if err := s.userRepo.Delete(c.Context(), userID); err != nil {
		return s.internalError(c, err)
	}

	cache.Invalidate(c.Context(), cache.ProfileListKey())
	return c.JSON(fiber.Map{"msg": "User deleted"})
}

// AddExperience handles PUT /api/profile/experience
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, models.NewValidationError(models.FieldError{Msg: "Invalid request body"}))
	}
	if verr := s.validate.Struct(&req); verr != nil {
		return s.fail(c, verr)
	}

	exp := &models.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}

	profile, err := s.profileRepo.AddExperience(c.Context(), s.callerID(c), exp)
	if err != nil {
		return s.internalError(c, err)
	}
	if profile == nil {
		return s.fail(c, models.NewNotFoundError("There is no profile for this user"))
	}

	cache.Invalidate(c.Context(), cache.ProfileListKey())
	return c.JSON(profile)
}

// DeleteExperience handles DELETE /api/profile/experience/:exp_id
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	profile, err := s.profileRepo.RemoveExperience(c.Context(), s.callerID(c), c.Params("exp_id"))
	if err != nil {
		return s.internalError(c, err)
	}
	if profile == nil {
		return s.fail(c, models.NewNotFoundError("There is no profile for this user"))
	}

	cache.Invalidate(c.Context(), cache.ProfileListKey())
	return c.JSON(profile)
}

// AddEducation handles PUT /api/profile/education
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req educationRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, models.NewValidationError(models.FieldError{Msg: "Invalid request body"}))
	}
	if verr := s.validate.Struct(&req); verr != nil {
		return s.fail(c, verr)
	}

	edu := &models.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}

	profile, err := s.profileRepo.AddEducation(c.Context(), s.callerID(c), edu)
	if err != nil {
		return s.internalError(c, err)
	}
	if profile == nil {
		return s.fail(c, models.NewNotFoundError("There is no profile for this user"))
	}

	cache.Invalidate(c.Context(), cache.ProfileListKey())
	return c.JSON(profile)
}

// DeleteEducation handles DELETE /api/profile/education/:edu_id
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	profile, err := s.profileRepo.RemoveEducation(c.Context(), s.callerID(c), c.Params("edu_id"))
	if err != nil {
		return s.internalError(c, err)
	}
	if profile == nil {
		return s.fail(c, models.NewNotFoundError("There is no profile for this user"))
	}

	cache.Invalidate(c.Context(), cache.ProfileListKey())
	return c.JSON(profile)
}
