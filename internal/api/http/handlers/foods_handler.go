package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glptrack/wellness-service/internal/api/dto"
	"github.com/glptrack/wellness-service/internal/auth"
	"github.com/glptrack/wellness-service/internal/service"
	apperrors "github.com/glptrack/wellness-service/pkg/util"
)

// FoodsHandler manages the shared catalog and personal foods.
type FoodsHandler struct {
	foods *service.FoodService
}

// NewFoodsHandler constructs handler.
func NewFoodsHandler(foods *service.FoodService) *FoodsHandler {
	return &FoodsHandler{foods: foods}
}

// ListCatalog GET /foods/catalog.
func (h *FoodsHandler) ListCatalog(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	items, err := h.foods.ListCatalog(c.Context(), user)
	if err != nil {
		return err
	}
	out := make([]dto.CatalogFoodResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewCatalogFoodResponse(item))
	}
	return c.JSON(fiber.Map{"data": out})
}

// ListCatalogByTab GET /foods/catalog/tabs/:tabId.
func (h *FoodsHandler) ListCatalogByTab(c *fiber.Ctx) error {
	items, err := h.foods.ListCatalogByTab(c.Context(), c.Params("tabId"))
	if err != nil {
		return err
	}
	out := make([]dto.CatalogFoodResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewCatalogFoodResponse(item))
	}
	return c.JSON(fiber.Map{"data": out})
}

// CreateCatalog POST /foods/catalog.
func (h *FoodsHandler) CreateCatalog(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	var req dto.CatalogFoodRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	food, err := h.foods.CreateCatalog(c.Context(), user, catalogInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewCatalogFoodResponse(*food)})
}

// UpdateCatalog PUT /foods/catalog/:id.
func (h *FoodsHandler) UpdateCatalog(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	var req dto.CatalogFoodRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.foods.UpdateCatalog(c.Context(), user, c.Params("id"), catalogInput(req)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// DeactivateCatalog POST /foods/catalog/:id/deactivate.
func (h *FoodsHandler) DeactivateCatalog(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	if err := h.foods.DeactivateCatalog(c.Context(), user, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deactivated": true}})
}

// DeleteCatalog DELETE /foods/catalog/:id.
func (h *FoodsHandler) DeleteCatalog(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	if err := h.foods.DeleteCatalog(c.Context(), user, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListUserFoods GET /foods/mine.
func (h *FoodsHandler) ListUserFoods(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	items, err := h.foods.ListUserFoods(c.Context(), user.ID)
	if err != nil {
		return err
	}
	out := make([]dto.UserFoodResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewUserFoodResponse(item))
	}
	return c.JSON(fiber.Map{"data": out})
}

// CreateUserFood POST /foods/mine.
func (h *FoodsHandler) CreateUserFood(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	var req dto.UserFoodRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	food, err := h.foods.CreateUserFood(c.Context(), user.ID, userFoodInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewUserFoodResponse(*food)})
}

// UpdateUserFood PUT /foods/mine/:id.
func (h *FoodsHandler) UpdateUserFood(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	var req dto.UserFoodRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.foods.UpdateUserFood(c.Context(), user.ID, c.Params("id"), userFoodInput(req)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// DeleteUserFood DELETE /foods/mine/:id.
func (h *FoodsHandler) DeleteUserFood(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	if err := h.foods.DeleteUserFood(c.Context(), user.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func catalogInput(req dto.CatalogFoodRequest) service.CatalogFoodInput {
	return service.CatalogFoodInput{
		Name:         req.Name,
		Detail:       req.Detail,
		Protein:      req.Protein,
		Carbs:        req.Carbs,
		Sugars:       req.Sugars,
		Fiber:        req.Fiber,
		Kcal:         req.Kcal,
		Icon:         req.Icon,
		ImageKey:     req.ImageKey,
		TabID:        req.TabID,
		CategoryName: req.CategoryName,
		SortOrder:    req.SortOrder,
	}
}

func userFoodInput(req dto.UserFoodRequest) service.UserFoodInput {
	return service.UserFoodInput{
		Name:     req.Name,
		Detail:   req.Detail,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Sugars:   req.Sugars,
		Fiber:    req.Fiber,
		Kcal:     req.Kcal,
		Icon:     req.Icon,
		ImageKey: req.ImageKey,
	}
}
