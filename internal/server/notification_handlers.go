package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	notifs, err := s.notificationService.ListForUser(c.Context(), currentUser(c).ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(notifs)
}

// MarkNotificationRead handles PUT/PATCH /api/notifications/:id
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.notificationService.MarkRead(c.Context(), currentUser(c).ID, id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}

// MarkAllNotificationsRead handles PUT/PATCH /api/notifications
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := s.notificationService.MarkAllRead(c.Context(), currentUser(c).ID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "All notifications marked as read",
	})
}
