// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Register handles POST /api/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	user, err := s.userService.Register(c.Context(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.credentials.Issue(user)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	user, err := s.userService.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.credentials.Issue(user)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/logout. The current token is revoked and can no
// longer authenticate even before it expires.
func (s *Server) Logout(c *fiber.Ctx) error {
	claims := currentClaims(c)
	if claims == nil {
		return models.RespondWithError(c,
			models.NewUnauthenticatedError("Authorization required"))
	}

	if err := s.credentials.Revoke(c.Context(), claims); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusResetContent).JSON(fiber.Map{
		"message": "Logged out",
	})
}

// ChangePassword handles POST /api/change-password
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	if err := s.userService.ChangePassword(c.Context(), currentUser(c), req.CurrentPassword, req.NewPassword); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Password updated",
	})
}

// ForgotPassword handles POST /api/forgot-password. A single-use reset token
// is attached to the account and returned for delivery out of band.
func (s *Server) ForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	token, err := s.userService.ForgotPassword(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"reset_token": token,
	})
}

// ResetPassword handles POST /api/forgot-password/:token
func (s *Server) ResetPassword(c *fiber.Ctx) error {
	token, err := uuid.Parse(c.Params("token"))
	if err != nil {
		return models.RespondWithError(c,
			models.NewInvalidArgumentError("Invalid reset token"))
	}

	var req struct {
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	if err := s.userService.ResetPassword(c.Context(), token, req.NewPassword); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Password updated",
	})
}
