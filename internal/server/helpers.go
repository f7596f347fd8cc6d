// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"errors"
	"strings"

	"ripple/internal/credentials"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseUUID extracts a route parameter by name as a UUID.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		_ = models.RespondWithError(c,
			models.NewInvalidArgumentError("Invalid "+humanizeParam(param)))
		return uuid.Nil, errResponseWritten
	}
	return id, nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "token" -> "token".
func humanizeParam(param string) string {
	if param == "id" || strings.HasSuffix(param, "Id") {
		return "ID"
	}
	return param
}

// currentUser returns the authenticated user stored by AuthRequired.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("currentUser").(*models.User)
	return user
}

// currentClaims returns the resolved token claims stored by AuthRequired.
func currentClaims(c *fiber.Ctx) *credentials.Claims {
	claims, _ := c.Locals("claims").(*credentials.Claims)
	return claims
}
