package server

import (
	"safespace/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetRooms handles GET /api/rooms
func (s *Server) GetRooms(c *fiber.Ctx) error {
	return c.JSON(s.store.Rooms())
}

// JoinRoom handles POST /api/rooms/:id/join
func (s *Server) JoinRoom(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	if err := s.controller.JoinRoom(c.UserContext(), id); err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return c.JSON(fiber.Map{
		"room_id":  id,
		"messages": s.store.Messages(),
	})
}

// LeaveRoom handles POST /api/rooms/leave
func (s *Server) LeaveRoom(c *fiber.Ctx) error {
	s.controller.LeaveRoom()
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMessages handles GET /api/messages
func (s *Server) GetMessages(c *fiber.Ctx) error {
	return c.JSON(s.store.Messages())
}

// SendMessage handles POST /api/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.controller.SendMessage(c.UserContext(), req.Content)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
