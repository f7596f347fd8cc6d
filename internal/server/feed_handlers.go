package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed. The feed holds non-archived posts written by
// peers of the caller's accepted connections.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	posts, err := s.feedService.GetFeed(c.Context(), currentUser(c).ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(posts)
}
