package server

import (
	"devlink/internal/models"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Text string `json:"text" validate:"required"`
}

type createCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// CreatePost handles POST /api/post. The author's name and avatar are
// copied onto the post once; later profile edits do not touch them.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, models.NewValidationError(models.FieldError{Msg: "Invalid request body"}))
	}
	if verr := s.validate.Struct(&req); verr != nil {
		return s.fail(c, verr)
	}

	user, err := s.userRepo.GetByID(c.Context(), s.callerID(c))
	if err != nil {
		return s.internalError(c, err)
	}
	if user == nil {
		return s.fail(c, models.NewNotFoundError("User not found"))
	}

	post := &models.Post{
		UserID: user.ID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := s.postRepo.Create(c.Context(), post); err != nil {
		return s.internalError(c, err)
	}

	return c.JSON(post)
}

// ListPosts handles GET /api/post, newest first.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.Context())
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/post/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.loadPost(c)
	if err != nil {
		return s.internalError(c, err)
	}
	if post == nil {
		return s.fail(c, models.NewNotFoundError("Post not found"))
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/post/:id. Owner only.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	post, err := s.loadPost(c)
	if err != nil {
		return s.internalError(c, err)
	}
	if post == nil {
		return s.fail(c, models.NewNotFoundError("Post not found"))
	}

	if post.UserID != s.callerID(c) {
		return s.fail(c, models.NewForbiddenError("User not authorized"))
	}

	if err := s.postRepo.Delete(c.Context(), post.ID); err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "Post removed"})
}

// LikePost handles PUT /api/post/like/:id. Liking twice is rejected.
func (s *Server) LikePost(c *fiber.Ctx) error {
	post, err := s.loadPost(c)
	if err != nil {
		return s.internalError(c, err)
	}
	if post == nil {
		return s.fail(c, models.NewNotFoundError("Post not found"))
	}

	userID := s.callerID(c)
	liked, err := s.postRepo.IsLiked(c.Context(), post.ID, userID)
	if err != nil {
		return s.internalError(c, err)
	}
	if liked {
		return s.fail(c, models.NewConflictError("Post already liked"))
	}

	if err := s.postRepo.Like(c.Context(), post.ID, userID); err != nil {
		return s.internalError(c, err)
	}

	likes, err := s.postRepo.Likes(c.Context(), post.ID)
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(likes)
}

// UnlikePost handles PUT /api/post/unlike/:id. Unliking a post the caller
// never liked is rejected.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	post, err := s.loadPost(c)
	if err != nil {
		return s.internalError(c, err)
	}
	if post == nil {
		return s.fail(c, models.NewNotFoundError("Post not found"))
	}

	userID := s.callerID(c)
	liked, err := s.postRepo.IsLiked(c.Context(), post.ID, userID)
	if err != nil {
		return s.internalError(c, err)
	}
	if !liked {
		return s.fail(c, models.NewConflictError("Post has not yet been liked"))
	}

	if err := s.postRepo.Unlike(c.Context(), post.ID, userID); err != nil {
		return s.internalError(c, err)
	}

	likes, err := s.postRepo.Likes(c.Context(), post.ID)
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(likes)
}

// AddComment handles POST /api/post/comment/:id
func (s *Server) AddComment(c *fiber.Ctx) error {
	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, models.NewValidationError(models.FieldError{Msg: "Invalid request body"}))
	}
	if verr := s.validate.Struct(&req); verr != nil {
		return s.fail(c, verr)
	}

	post, err := s.loadPost(c)
	if err != nil {
		return s.internalError(c, err)
	}
	if post == nil {
		return s.fail(c, models.NewNotFoundError("Post not found"))
	}

	user, err := s.userRepo.GetByID(c.Context(), s.callerID(c))
	if err != nil {
		return s.internalError(c, err)
	}
	if user == nil {
		return s.fail(c, models.NewNotFoundError("User not found"))
	}

	comment := &models.Comment{
		PostID: post.ID,
		UserID: user.ID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := s.postRepo.AddComment(c.Context(), comment); err != nil {
		return s.internalError(c, err)
	}

	comments, err := s.postRepo.Comments(c.Context(), post.ID)
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(comments)
}

// DeleteComment handles DELETE /api/post/comment/:id/:comment_id.
// Comment owner only.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	post, err := s.loadPost(c)
	if err != nil {
		return s.internalError(c, err)
	}
	if post == nil {
		return s.fail(c, models.NewNotFoundError("Post not found"))
	}

	comment, err := s.postRepo.GetComment(c.Context(), post.ID, c.Params("comment_id"))
	if err != nil {
		return s.internalError(c, err)
	}
	if comment == nil {
		return s.fail(c, models.NewNotFoundError("Comment does not exist"))
	}

	if comment.UserID != s.callerID(c) {
		return s.fail(c, models.NewForbiddenError("User not authorized"))
	}

	if err := s.postRepo.RemoveComment(c.Context(), post.ID, comment.ID); err != nil {
		return s.internalError(c, err)
	}

	comments, err := s.postRepo.Comments(c.Context(), post.ID)
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(comments)
}

// loadPost fetches the post named by the :id route parameter.
// (nil, nil) means the post does not exist or the id is malformed.
func (s *Server) loadPost(c *fiber.Ctx) (*models.Post, error) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return nil, nil
	}
	return s.postRepo.GetByID(c.Context(), id)
}
