package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendFollowRequest handles POST /api/follow-requests. The body names the
// target by username; the connection starts out pending.
func (s *Server) SendFollowRequest(c *fiber.Ctx) error {
	var req struct {
		User string `json:"user"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	sender := currentUser(c)
	conn, err := s.connectionService.SendFollowRequest(c.Context(), sender, req.User)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(conn.ViewFor(sender.ID))
}

// GetFollowRequests handles GET /api/follow-requests, listing pending
// requests addressed to the caller.
func (s *Server) GetFollowRequests(c *fiber.Ctx) error {
	pending, err := s.connectionService.ListPendingRequests(c.Context(), currentUser(c).ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(pending)
}

// RespondToFollowRequest handles PUT/PATCH /api/follow-requests/:id with a
// body of {"response": "accept"} or {"response": "reject"}. Accepting returns
// the connection; rejecting removes it and returns no content.
func (s *Server) RespondToFollowRequest(c *fiber.Ctx) error {
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Response string `json:"response"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	responder := currentUser(c)
	conn, err := s.connectionService.RespondToFollowRequest(c.Context(), responder, id, req.Response)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if conn == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(conn.ViewFor(responder.ID))
}

// GetConnections handles GET /api/connections, listing the caller's accepted
// connections with the peer named from the caller's side.
func (s *Server) GetConnections(c *fiber.Ctx) error {
	conns, err := s.connectionService.ListActiveConnections(c.Context(), currentUser(c).ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(conns)
}

// RemoveConnection handles DELETE /api/connections/:id. Either participant
// may remove the connection.
func (s *Server) RemoveConnection(c *fiber.Ctx) error {
	id, err := s.parseUUID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.connectionService.RemoveConnection(c.Context(), currentUser(c).ID, id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
