package service

import (
	"context"
	"strings"
	"time"

	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/repository"
	"github.com/glptrack/wellness-service/pkg/util"
)

// CatalogFoodInput describes catalog create/update payloads.
type CatalogFoodInput struct {
	Name         string
	Detail       string
	Protein      float64
	Carbs        float64
	Sugars       *float64
	Fiber        float64
	Kcal         float64
	Icon         string
	ImageKey     *string
	TabID        string
	CategoryName string
	SortOrder    *int
}

// UserFoodInput describes personal food create/update payloads.
type UserFoodInput struct {
	Name     string
	Detail   string
	Protein  float64
	Carbs    float64
	Sugars   *float64
	Fiber    float64
	Kcal     float64
	Icon     *string
	ImageKey *string
}

// FoodService manages the shared catalog and per-member foods.
type FoodService struct {
	foods repository.FoodRepository
	authz *AuthzService
	now   func() int64
}

// NewFoodService constructs the service.
func NewFoodService(foods repository.FoodRepository, authz *AuthzService) *FoodService {
	return &FoodService{
		foods: foods,
		authz: authz,
		now:   func() int64 { return time.Now().UnixMilli() },
	}
}

// ListCatalog returns catalog items; members see active items only,
// managers and admins see everything.
func (s *FoodService) ListCatalog(ctx context.Context, viewer *domain.User) ([]domain.CatalogFood, error) {
	activeOnly := !s.authz.IsManager(viewer)
	items, err := s.foods.ListCatalog(ctx, activeOnly)
	if err != nil {
		return nil, util.MapError(err)
	}
	return items, nil
}

// ListCatalogByTab returns the active items of one tab.
func (s *FoodService) ListCatalogByTab(ctx context.Context, tabID string) ([]domain.CatalogFood, error) {
	items, err := s.foods.ListCatalogByTab(ctx, tabID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return items, nil
}

// CreateCatalog adds a catalog item at the end of its tab ordering.
func (s *FoodService) CreateCatalog(ctx context.Context, actor *domain.User, input CatalogFoodInput) (*domain.CatalogFood, error) {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return nil, err
	}
	if err := validateFoodName(input.Name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.TabID) == "" {
		return nil, util.NewValidationError("tabId is required", nil)
	}

	food := &domain.CatalogFood{
		Name:         strings.TrimSpace(input.Name),
		Detail:       input.Detail,
		Protein:      input.Protein,
		Carbs:        input.Carbs,
		Sugars:       input.Sugars,
		Fiber:        input.Fiber,
		Kcal:         input.Kcal,
		Icon:         input.Icon,
		ImageKey:     input.ImageKey,
		TabID:        strings.TrimSpace(input.TabID),
		CategoryName: strings.TrimSpace(input.CategoryName),
		IsActive:     true,
		CreatedAt:    s.now(),
	}
	if input.SortOrder != nil {
		food.SortOrder = *input.SortOrder
	}
	if err := s.foods.CreateCatalog(ctx, food); err != nil {
		return nil, util.MapError(err)
	}
	food.UpdatedAt = food.CreatedAt
	return food, nil
}

// UpdateCatalog rewrites a catalog item.
func (s *FoodService) UpdateCatalog(ctx context.Context, actor *domain.User, id string, input CatalogFoodInput) error {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return err
	}
	if err := validateFoodName(input.Name); err != nil {
		return err
	}

	existing, err := s.foods.GetCatalog(ctx, id)
	if err != nil {
		return util.MapError(err)
	}

	food := &domain.CatalogFood{
		ID:           id,
		Name:         strings.TrimSpace(input.Name),
		Detail:       input.Detail,
		Protein:      input.Protein,
		Carbs:        input.Carbs,
		Sugars:       input.Sugars,
		Fiber:        input.Fiber,
		Kcal:         input.Kcal,
		Icon:         input.Icon,
		ImageKey:     input.ImageKey,
		TabID:        strings.TrimSpace(input.TabID),
		CategoryName: strings.TrimSpace(input.CategoryName),
		SortOrder:    existing.SortOrder,
		IsActive:     existing.IsActive,
		UpdatedAt:    s.now(),
	}
	if input.SortOrder != nil {
		food.SortOrder = *input.SortOrder
	}
	return util.MapError(s.foods.UpdateCatalog(ctx, food))
}

// DeactivateCatalog soft deletes a catalog item so existing nutrition
// records keep resolving it.
func (s *FoodService) DeactivateCatalog(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return err
	}
	return util.MapError(s.foods.DeactivateCatalog(ctx, id, s.now()))
}

// DeleteCatalog permanently removes a catalog item.
func (s *FoodService) DeleteCatalog(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.authz.RequireAdminOrManager(actor); err != nil {
		return err
	}
	return util.MapError(s.foods.DeleteCatalog(ctx, id))
}

// ListUserFoods returns the member's personal foods.
func (s *FoodService) ListUserFoods(ctx context.Context, userID string) ([]domain.UserFood, error) {
	items, err := s.foods.ListUserFoods(ctx, userID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return items, nil
}

// CreateUserFood adds a personal food.
func (s *FoodService) CreateUserFood(ctx context.Context, userID string, input UserFoodInput) (*domain.UserFood, error) {
	if err := validateFoodName(input.Name); err != nil {
		return nil, err
	}

	food := &domain.UserFood{
		UserID:    userID,
		Name:      strings.TrimSpace(input.Name),
		Detail:    input.Detail,
		Protein:   input.Protein,
		Carbs:     input.Carbs,
		Sugars:    input.Sugars,
		Fiber:     input.Fiber,
		Kcal:      input.Kcal,
		Icon:      input.Icon,
		ImageKey:  input.ImageKey,
		CreatedAt: s.now(),
	}
	if err := s.foods.CreateUserFood(ctx, food); err != nil {
		return nil, util.MapError(err)
	}
	return food, nil
}

// UpdateUserFood rewrites a personal food. Owners only.
func (s *FoodService) UpdateUserFood(ctx context.Context, userID, id string, input UserFoodInput) error {
	if err := validateFoodName(input.Name); err != nil {
		return err
	}

	existing, err := s.foods.GetUserFood(ctx, id)
	if err != nil {
		return util.MapError(err)
	}
	if existing.UserID != userID {
		return util.NewForbidden("cannot modify another member's food")
	}

	food := &domain.UserFood{
		ID:       id,
		UserID:   userID,
		Name:     strings.TrimSpace(input.Name),
		Detail:   input.Detail,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Sugars:   input.Sugars,
		Fiber:    input.Fiber,
		Kcal:     input.Kcal,
		Icon:     input.Icon,
		ImageKey: input.ImageKey,
	}
	return util.MapError(s.foods.UpdateUserFood(ctx, food))
}

// DeleteUserFood removes a personal food. Owners only.
func (s *FoodService) DeleteUserFood(ctx context.Context, userID, id string) error {
	existing, err := s.foods.GetUserFood(ctx, id)
	if err != nil {
		return util.MapError(err)
	}
	if existing.UserID != userID {
		return util.NewForbidden("cannot delete another member's food")
	}
	return util.MapError(s.foods.DeleteUserFood(ctx, id))
}

func validateFoodName(name string) error {
	if strings.TrimSpace(name) == "" {
		return util.NewValidationError("name is required", nil)
	}
	return nil
}
