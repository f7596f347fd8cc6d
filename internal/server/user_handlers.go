package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers handles GET /api/users. Archived accounts are excluded.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	users, err := s.userRepo.ListActive(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(users)
}

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles PUT/PATCH /api/users/:id. Only the account owner may
// update it; keys route to the user or its profile by a fixed allowlist.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	actor := currentUser(c)
	if actor.ID != id {
		return models.RespondWithError(c,
			models.NewForbiddenError("you are not authorised!"))
	}

	var patch map[string]string
	if err := c.BodyParser(&patch); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	user, err := s.userService.UpdateUser(c.Context(), actor.ID, patch)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id. The account and everything it
// owns are archived, and the current token is revoked.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.accountService.ArchiveAccount(c.Context(), currentUser(c), id, currentClaims(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
