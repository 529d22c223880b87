package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glptrack/wellness-service/internal/api/dto"
	"github.com/glptrack/wellness-service/internal/auth"
	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/service"
	apperrors "github.com/glptrack/wellness-service/pkg/util"
)

// ContentHandler manages the editorial section trees. The section name is
// always the first path parameter.
type ContentHandler struct {
	content *service.ContentService
}

// NewContentHandler constructs handler.
func NewContentHandler(content *service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// ListCategories GET /content/:section/categories.
func (h *ContentHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.content.ListCategories(c.Context(), domain.ContentSection(c.Params("section")))
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, dto.NewCategoryResponse(category))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateCategory POST /content/:section/categories.
func (h *ContentHandler) CreateCategory(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.content.CreateCategory(c.Context(), user, domain.ContentSection(c.Params("section")), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewCategoryResponse(*category)})
}

// UpdateCategory PUT /content/:section/categories/:id.
func (h *ContentHandler) UpdateCategory(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	err := h.content.UpdateCategory(c.Context(), user, domain.ContentSection(c.Params("section")), c.Params("id"), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// DeleteCategory DELETE /content/:section/categories/:id.
func (h *ContentHandler) DeleteCategory(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	if err := h.content.DeleteCategory(c.Context(), user, domain.ContentSection(c.Params("section")), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ReorderCategories POST /content/:section/categories/reorder.
func (h *ContentHandler) ReorderCategories(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.content.ReorderCategories(c.Context(), user, domain.ContentSection(c.Params("section")), req.OrderedIDs); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reordered": true}})
}

// ListTopics GET /content/categories/:categoryId/topics.
func (h *ContentHandler) ListTopics(c *fiber.Ctx) error {
	topics, err := h.content.ListTopics(c.Context(), c.Params("categoryId"))
	if err != nil {
		return err
	}
	items := make([]dto.ContentTopicResponse, 0, len(topics))
	for _, topic := range topics {
		items = append(items, dto.NewContentTopicResponse(topic))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateTopic POST /content/categories/:categoryId/topics.
func (h *ContentHandler) CreateTopic(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	var req dto.ContentTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	topic, err := h.content.CreateTopic(c.Context(), user, c.Params("categoryId"), service.TopicInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewContentTopicResponse(*topic)})
}

// UpdateTopic PUT /content/topics/:id.
func (h *ContentHandler) UpdateTopic(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	var req dto.ContentTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	err := h.content.UpdateTopic(c.Context(), user, c.Params("id"), service.TopicInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// DeleteTopic DELETE /content/topics/:id.
func (h *ContentHandler) DeleteTopic(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	if err := h.content.DeleteTopic(c.Context(), user, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListArticles GET /content/topics/:topicId/articles.
func (h *ContentHandler) ListArticles(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	articles, err := h.content.ListArticles(c.Context(), user, c.Params("topicId"))
	if err != nil {
		return err
	}
	items := make([]dto.ArticleResponse, 0, len(articles))
	for _, article := range articles {
		items = append(items, dto.NewArticleResponse(article))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetArticle GET /content/articles/:id.
func (h *ContentHandler) GetArticle(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	article, err := h.content.GetArticle(c.Context(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewArticleResponse(*article)})
}

// CreateArticle POST /content/topics/:topicId/articles.
func (h *ContentHandler) CreateArticle(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	var req dto.ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	article, err := h.content.CreateArticle(c.Context(), user, c.Params("topicId"), articleInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"id": article.ID}})
}

// UpdateArticle PUT /content/articles/:id.
func (h *ContentHandler) UpdateArticle(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	var req dto.ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.content.UpdateArticle(c.Context(), user, c.Params("id"), articleInput(req)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// DeleteArticle DELETE /content/articles/:id.
func (h *ContentHandler) DeleteArticle(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	if err := h.content.DeleteArticle(c.Context(), user, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func articleInput(req dto.ArticleRequest) service.ArticleInput {
	return service.ArticleInput{
		Title:     req.Title,
		Content:   req.Content,
		Summary:   req.Summary,
		SortOrder: req.SortOrder,
		IsPremium: req.IsPremium,
		Images:    req.Images,
	}
}
