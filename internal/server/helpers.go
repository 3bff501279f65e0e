package server

import (
	"strconv"

	"safespace/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID parses a numeric route parameter.
func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, models.NewValidationError("Invalid " + name + " parameter")
	}
	return id, nil
}
