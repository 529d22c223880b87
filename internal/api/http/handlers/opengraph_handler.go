package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glptrack/wellness-service/internal/service"
)

// OpenGraphHandler serves link previews.
type OpenGraphHandler struct {
	opengraph *service.OpenGraphService
}

// NewOpenGraphHandler constructs handler.
func NewOpenGraphHandler(opengraph *service.OpenGraphService) *OpenGraphHandler {
	return &OpenGraphHandler{opengraph: opengraph}
}

// Preview GET /opengraph?url=.
func (h *OpenGraphHandler) Preview(c *fiber.Ctx) error {
	preview, err := h.opengraph.Preview(c.Context(), c.Query("url"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": preview})
}
