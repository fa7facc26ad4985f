package server

import (
	"warble/internal/models"
	"warble/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMe handles GET /api/secured/user/me
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user.Public()})
}

// GetUserProfile handles GET /api/secured/user/profile/:email
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	email := c.Params("email")
	if email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email is required"))
	}

	user, err := s.userService.GetProfileByEmail(c.Context(), email)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":      user.Public(),
		"following": user.Following,
		"followers": user.Followers,
	})
}

// GetSuggestedUsers handles GET /api/secured/user/suggested
func (s *Server) GetSuggestedUsers(c *fiber.Ctx) error {
	users, err := s.userService.Suggestions(c.Context(), currentUserID(c))
	if err != nil {
		return s.respondError(c, err)
	}

	suggestions := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		suggestions = append(suggestions, users[i].Public())
	}
	return c.JSON(fiber.Map{"users": suggestions})
}

// UpdateProfile handles POST /api/secured/user/update. Absent fields are
// left unchanged; an explicit empty string clears the field where allowed.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		FullName        *string `json:"full_name"`
		Username        *string `json:"username"`
		Email           *string `json:"email"`
		Bio             *string `json:"bio"`
		Link            *string `json:"link"`
		CurrentPassword string  `json:"current_password"`
		NewPassword     string  `json:"new_password"`
		ProfileImg      *string `json:"profile_img"`
		CoverImg        *string `json:"cover_img"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:          currentUserID(c),
		FullName:        req.FullName,
		Username:        req.Username,
		Email:           req.Email,
		Bio:             req.Bio,
		Link:            req.Link,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ProfileImg:      req.ProfileImg,
		CoverImg:        req.CoverImg,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{"user": user.Public()})
}

// FollowUnfollow handles POST /api/secured/user/follow/:id. The endpoint
// toggles: a first call follows, a second unfollows.
func (s *Server) FollowUnfollow(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	following, err := s.userService.ToggleFollow(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return s.respondError(c, err)
	}

	message := "Unfollowed successfully"
	if following {
		message = "Followed successfully"
	}
	return c.JSON(fiber.Map{
		"following": following,
		"message":   message,
	})
}
