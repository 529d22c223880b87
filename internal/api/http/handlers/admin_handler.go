package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glptrack/wellness-service/internal/api/dto"
	"github.com/glptrack/wellness-service/internal/auth"
	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/service"
	apperrors "github.com/glptrack/wellness-service/pkg/util"
)

// AdminHandler groups administrative endpoints: promo codes, role
// assignment, permanent premium, app settings. Role checks live in the
// services so they hold for every caller, not just this surface.
type AdminHandler struct {
	entitlements *service.EntitlementService
	authz        *service.AuthzService
	settings     *service.SettingsService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(entitlements *service.EntitlementService, authz *service.AuthzService, settings *service.SettingsService) *AdminHandler {
	return &AdminHandler{entitlements: entitlements, authz: authz, settings: settings}
}

// CreatePromo POST /admin/promo-codes.
func (h *AdminHandler) CreatePromo(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	var req dto.CreatePromoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	promo, err := h.entitlements.CreatePromoCode(c.Context(), user, service.PromoCreateInput{
		Code:           req.Code,
		DurationMonths: req.DurationMonths,
		ProductID:      req.ProductID,
		ProductTitle:   req.ProductTitle,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewPromoResponse(*promo)})
}

// ListPromos GET /admin/promo-codes.
func (h *AdminHandler) ListPromos(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	promos, err := h.entitlements.ListPromoCodes(c.Context(), user)
	if err != nil {
		return err
	}
	items := make([]dto.PromoResponse, 0, len(promos))
	for _, promo := range promos {
		items = append(items, dto.NewPromoResponse(promo))
	}
	return c.JSON(fiber.Map{"data": items})
}

// FindMember GET /admin/members?email=.
func (h *AdminHandler) FindMember(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	member, err := h.authz.FindMemberByEmail(c.Context(), user, c.Query("email"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(member, h.authz.CurrentRole(member))})
}

// SetRole PUT /admin/members/:id/role.
func (h *AdminHandler) SetRole(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	var req dto.SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.authz.SetMemberRole(c.Context(), user, c.Params("id"), domain.Role(req.Role)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// SetPermanentPremium PUT /admin/members/:id/permanent-premium.
func (h *AdminHandler) SetPermanentPremium(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	var req dto.PermanentPremiumRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.entitlements.GrantPermanentPremium(c.Context(), user, c.Params("id"), req.Permanent); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// GetSettings GET /settings.
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settings.Get(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSettingsResponse(settings)})
}

// UpdateSettings PUT /admin/settings.
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	var req dto.SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	settings, err := h.settings.Update(c.Context(), user, service.SettingsInput{
		AllowUSMode:      req.AllowUSMode,
		AllowPeptides:    req.AllowPeptides,
		AllowRetatrutide: req.AllowRetatrutide,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSettingsResponse(settings)})
}
