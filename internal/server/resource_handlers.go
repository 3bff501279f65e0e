package server

import (
	"safespace/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetResources handles GET /api/resources. The list is populated by the
// resources tab switch; before that it is empty.
func (s *Server) GetResources(c *fiber.Ctx) error {
	return c.JSON(s.store.Resources())
}

// CreateReport handles POST /api/reports
func (s *Server) CreateReport(c *fiber.Ctx) error {
	var req struct {
		TargetType  string `json:"target_type"`
		TargetID    int64  `json:"target_id"`
		Reason      string `json:"reason"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, err := s.controller.SubmitReport(c.UserContext(), req.TargetType, req.TargetID, req.Reason, req.Description)
	if err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}
