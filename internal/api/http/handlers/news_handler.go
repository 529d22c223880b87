package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glptrack/wellness-service/internal/api/dto"
	"github.com/glptrack/wellness-service/internal/auth"
	"github.com/glptrack/wellness-service/internal/service"
	apperrors "github.com/glptrack/wellness-service/pkg/util"
)

// NewsHandler manages the news feed endpoints.
type NewsHandler struct {
	news *service.NewsService
}

// NewNewsHandler constructs handler.
func NewNewsHandler(news *service.NewsService) *NewsHandler {
	return &NewsHandler{news: news}
}

// List GET /news.
func (h *NewsHandler) List(c *fiber.Ctx) error {
	articles, err := h.news.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.NewsResponse, 0, len(articles))
	for _, article := range articles {
		items = append(items, dto.NewNewsResponse(article))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /news/:id.
func (h *NewsHandler) Get(c *fiber.Ctx) error {
	article, err := h.news.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewNewsResponse(*article)})
}

// Create POST /news.
func (h *NewsHandler) Create(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	var req dto.NewsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	article, err := h.news.Create(c.Context(), user, newsInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewNewsResponse(*article)})
}

// Update PUT /news/:id.
func (h *NewsHandler) Update(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	var req dto.NewsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.news.Update(c.Context(), user, c.Params("id"), newsInput(req)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// Delete DELETE /news/:id.
func (h *NewsHandler) Delete(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	if err := h.news.Delete(c.Context(), user, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// TogglePin POST /news/:id/pin.
func (h *NewsHandler) TogglePin(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	if err := h.news.TogglePin(c.Context(), user, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"toggled": true}})
}

func newsInput(req dto.NewsRequest) service.NewsInput {
	return service.NewsInput{
		Title:   req.Title,
		Content: req.Content,
		Summary: req.Summary,
		Images:  req.Images,
	}
}
