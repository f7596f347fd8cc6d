package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Search handles GET /api/search. Exactly one of the username, tag, or post
// query parameters selects what is searched; username lookups omit the email.
func (s *Server) Search(c *fiber.Ctx) error {
	switch {
	case c.Query("username") != "":
		user, err := s.userRepo.GetActiveByUsername(c.Context(), c.Query("username"))
		if err != nil {
			return models.RespondWithError(c, err)
		}
		if user == nil {
			return models.RespondWithError(c,
				models.NewNotFoundError("user", c.Query("username")))
		}
		return c.JSON(fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"profile":  user.Profile,
		})

	case c.Query("tag") != "":
		posts, err := s.postRepo.SearchByTag(c.Context(), c.Query("tag"))
		if err != nil {
			return models.RespondWithError(c, err)
		}
		if posts == nil {
			posts = []models.Post{}
		}
		return c.JSON(posts)

	case c.Query("post") != "":
		posts, err := s.postRepo.SearchByTitle(c.Context(), c.Query("post"))
		if err != nil {
			return models.RespondWithError(c, err)
		}
		if posts == nil {
			posts = []models.Post{}
		}
		return c.JSON(posts)
	}

	return models.RespondWithError(c,
		models.NewInvalidArgumentError("one of username, tag, or post is required"))
}
