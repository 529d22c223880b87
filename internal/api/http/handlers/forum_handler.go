package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/glptrack/wellness-service/internal/api/dto"
	"github.com/glptrack/wellness-service/internal/auth"
	"github.com/glptrack/wellness-service/internal/service"
	apperrors "github.com/glptrack/wellness-service/pkg/util"
)

// ForumHandler manages community forum endpoints.
type ForumHandler struct {
	forum *service.ForumService
}

// NewForumHandler constructs handler.
func NewForumHandler(forum *service.ForumService) *ForumHandler {
	return &ForumHandler{forum: forum}
}

// ListTopics GET /forum/topics.
func (h *ForumHandler) ListTopics(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}

	input := service.ForumListInput{
		Category: c.Query("category"),
		Filter:   c.Query("filter"),
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return apperrors.NewValidationError("limit must be a positive integer", nil)
		}
		input.Limit = limit
	}

	topics, err := h.forum.ListTopics(c.Context(), user, input)
	if err != nil {
		return err
	}
	items := make([]dto.ForumPostResponse, 0, len(topics))
	for _, topic := range topics {
		items = append(items, dto.NewForumPostResponse(topic))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTopic GET /forum/topics/:id.
func (h *ForumHandler) GetTopic(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	topic, replies, err := h.forum.GetTopic(c.Context(), user, c.Params("id"))
	if err != nil {
		return err
	}
	replyItems := make([]dto.ForumPostResponse, 0, len(replies))
	for _, reply := range replies {
		replyItems = append(replyItems, dto.NewForumPostResponse(reply))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"topic":   dto.NewForumPostResponse(*topic),
		"replies": replyItems,
	}})
}

// CreateTopic POST /forum/topics.
func (h *ForumHandler) CreateTopic(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	var req dto.CreateTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	post, err := h.forum.CreateTopic(c.Context(), user, service.TopicCreateInput{
		Category: req.Category,
		Title:    req.Title,
		Text:     req.Text,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"id": post.ID}})
}

// CreateReply POST /forum/topics/:id/replies.
func (h *ForumHandler) CreateReply(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	var req dto.CreateReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	post, err := h.forum.CreateReply(c.Context(), user, c.Params("id"), req.Text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"id": post.ID}})
}

// DeletePost DELETE /forum/posts/:id.
func (h *ForumHandler) DeletePost(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	if err := h.forum.Delete(c.Context(), user, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// TogglePin POST /forum/topics/:id/pin.
func (h *ForumHandler) TogglePin(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	if err := h.forum.TogglePin(c.Context(), user, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"toggled": true}})
}

// ToggleLike POST /forum/posts/:id/like.
func (h *ForumHandler) ToggleLike(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	liked, count, err := h.forum.ToggleLike(c.Context(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"liked": liked, "likeCount": count}})
}
