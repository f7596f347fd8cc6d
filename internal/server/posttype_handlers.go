package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPostTypes handles GET /api/post-types
func (s *Server) GetPostTypes(c *fiber.Ctx) error {
	types, err := s.postService.ListPostTypes(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(types)
}

// CreatePostType handles POST /api/post-types
func (s *Server) CreatePostType(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	postType, err := s.postService.CreatePostType(c.Context(), req.Name)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(postType)
}
