package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glptrack/wellness-service/internal/api/dto"
	"github.com/glptrack/wellness-service/internal/auth"
	"github.com/glptrack/wellness-service/internal/service"
	apperrors "github.com/glptrack/wellness-service/pkg/util"
)

// PremiumHandler exposes entitlement state and grants.
type PremiumHandler struct {
	entitlements *service.EntitlementService
}

// NewPremiumHandler constructs handler.
func NewPremiumHandler(entitlements *service.EntitlementService) *PremiumHandler {
	return &PremiumHandler{entitlements: entitlements}
}

// Status GET /premium/status.
func (h *PremiumHandler) Status(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	return c.JSON(fiber.Map{"data": h.entitlements.Status(user)})
}

// ActivateTrial POST /premium/trial. A decline is not a failure: the
// envelope carries success=false plus a reason code.
func (h *PremiumHandler) ActivateTrial(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	result, err := h.entitlements.ActivateTrial(c.Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(grantEnvelope(result))
}

// RedeemPromo POST /premium/redeem.
func (h *PremiumHandler) RedeemPromo(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	var req dto.RedeemPromoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result, err := h.entitlements.RedeemPromoCode(c.Context(), user, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(grantEnvelope(result))
}

func grantEnvelope(result service.GrantResult) fiber.Map {
	envelope := fiber.Map{"success": result.Applied}
	if result.Applied {
		envelope["premiumUntil"] = result.PremiumUntil
		if result.ProductTitle != "" {
			envelope["productTitle"] = result.ProductTitle
		}
		if result.DurationMonths > 0 {
			envelope["durationMonths"] = result.DurationMonths
		}
	} else {
		envelope["reason"] = result.Reason
	}
	return envelope
}
