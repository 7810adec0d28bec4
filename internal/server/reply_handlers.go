package server

import (
	"moodboard/internal/models"
	"moodboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetReplies handles GET /api/posts/:id/replies
// @Summary List replies, oldest first
// @Tags replies
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {array} models.Reply
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/replies [get]
func (s *Server) GetReplies(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	replies, err := s.postService.ListReplies(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(replies)
}

// CreateReply handles POST /api/posts/:id/replies
func (s *Server) CreateReply(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text     string `json:"text"`
		ImageURL string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	reply, err := s.postService.Reply(c.UserContext(), service.CreateReplyInput{
		PostID:   id,
		Text:     req.Text,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}
