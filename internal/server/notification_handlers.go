package server

import (
	"warble/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/secured/notifications. Listing is
// read-only; clients mark notifications read explicitly via /read.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	notifications, err := s.notifRepo.ListForRecipient(c.Context(), currentUserID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}

// MarkNotificationsRead handles POST /api/secured/notifications/read
func (s *Server) MarkNotificationsRead(c *fiber.Ctx) error {
	if err := s.notifRepo.MarkAllRead(c.Context(), currentUserID(c)); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notifications marked as read"})
}

// DeleteNotifications handles DELETE /api/secured/notifications. Only the
// caller's own notifications are removed.
func (s *Server) DeleteNotifications(c *fiber.Ctx) error {
	if err := s.notifRepo.DeleteForRecipient(c.Context(), currentUserID(c)); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notifications deleted successfully"})
}
