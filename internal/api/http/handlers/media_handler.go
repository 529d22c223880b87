package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glptrack/wellness-service/internal/auth"
	"github.com/glptrack/wellness-service/internal/service"
	apperrors "github.com/glptrack/wellness-service/pkg/util"
)

// MediaHandler manages image uploads and shortcode resolution.
type MediaHandler struct {
	media *service.MediaService
}

// NewMediaHandler constructs handler.
func NewMediaHandler(media *service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// Upload POST /media (multipart form, field "file").
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	if _, ok := auth.CurrentUser(c); !ok {
		return apperrors.NewUnauthenticated("user required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file is required", nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("unreadable file", nil)
	}
	defer file.Close()

	result, err := h.media.Upload(c.Context(), fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), file, fileHeader.Size)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": result})
}

// Resolve GET /media/shortcodes/:code.
func (h *MediaHandler) Resolve(c *fiber.Ctx) error {
	url, err := h.media.Resolve(c.Context(), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"code": c.Params("code"), "url": url}})
}

// Delete DELETE /media/shortcodes/:code.
func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	if _, ok := auth.CurrentUser(c); !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	if err := h.media.DeleteShortcode(c.Context(), c.Params("code")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
