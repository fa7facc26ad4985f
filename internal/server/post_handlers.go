package server

import (
	"warble/internal/models"
	"warble/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/secured/posts/create
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text  string `json:"text"`
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID: currentUserID(c),
		Text:   req.Text,
		Image:  req.Image,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": post})
}

// DeletePost handles DELETE /api/secured/posts/delete/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), currentUserID(c), postID); err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}

// CommentPost handles POST /api/secured/posts/comment/:id and returns the
// post with its updated comment list.
func (s *Server) CommentPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CommentOnPost(c.Context(), currentUserID(c), postID, req.Text)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": post})
}

// LikeUnlikePost handles POST /api/secured/posts/like/:id. The endpoint
// toggles and responds with the post's like rows after the change.
func (s *Server) LikeUnlikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likes, err := s.postService.ToggleLike(c.Context(), currentUserID(c), postID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{"likes": likes})
}

// GetAllPosts handles GET /api/secured/posts/all
func (s *Server) GetAllPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	posts, err := s.postService.AllPosts(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return s.respondError(c, err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetFollowingPosts handles GET /api/secured/posts/following. Following
// nobody yields an empty list, not an error.
func (s *Server) GetFollowingPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	posts, err := s.postService.FollowingFeed(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return s.respondError(c, err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetUserPosts handles GET /api/secured/posts/user/:email
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	email := c.Params("email")
	if email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email is required"))
	}
	p := parsePagination(c, 20)

	posts, err := s.postService.UserPosts(c.Context(), email, p.Limit, p.Offset)
	if err != nil {
		return s.respondError(c, err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetLikedPosts handles GET /api/secured/posts/likes/:id
func (s *Server) GetLikedPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	posts, err := s.postService.LikedPosts(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return s.respondError(c, err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return c.JSON(fiber.Map{"posts": posts})
}
