package dto

import "github.com/glptrack/wellness-service/internal/domain"

// RedeemPromoRequest payload.
type RedeemPromoRequest struct {
	Code string `json:"code"`
}

// CreatePromoRequest payload.
type CreatePromoRequest struct {
	Code           string `json:"code"`
	DurationMonths int    `json:"durationMonths"`
	ProductID      string `json:"productId"`
	ProductTitle   string `json:"productTitle"`
}

// PromoResponse represents a promo code.
type PromoResponse struct {
	ID             string  `json:"id"`
	Code           string  `json:"code"`
	DurationMonths int     `json:"durationMonths"`
	ProductID      string  `json:"productId"`
	ProductTitle   string  `json:"productTitle"`
	CreatedBy      string  `json:"createdBy"`
	CreatedAt      int64   `json:"createdAt"`
	UsedBy         *string `json:"usedBy"`
	UsedAt         *int64  `json:"usedAt"`
}

// NewPromoResponse maps a promo code.
func NewPromoResponse(p domain.PromoCode) PromoResponse {
	return PromoResponse{
		ID:             p.ID,
		Code:           p.Code,
		DurationMonths: p.DurationMonths,
		ProductID:      p.ProductID,
		ProductTitle:   p.ProductTitle,
		CreatedBy:      p.CreatedBy,
		CreatedAt:      p.CreatedAt,
		UsedBy:         p.UsedBy,
		UsedAt:         p.UsedAt,
	}
}

// SetRoleRequest payload.
type SetRoleRequest struct {
	Role string `json:"role"`
}

// PermanentPremiumRequest payload.
type PermanentPremiumRequest struct {
	Permanent bool `json:"permanent"`
}

// SettingsRequest payload.
type SettingsRequest struct {
	AllowUSMode      bool `json:"allowUsMode"`
	AllowPeptides    bool `json:"allowPeptides"`
	AllowRetatrutide bool `json:"allowRetatrutide"`
}

// SettingsResponse represents the global feature toggles.
type SettingsResponse struct {
	AllowUSMode      bool  `json:"allowUsMode"`
	AllowPeptides    bool  `json:"allowPeptides"`
	AllowRetatrutide bool  `json:"allowRetatrutide"`
	UpdatedAt        int64 `json:"updatedAt"`
}

// NewSettingsResponse maps the settings document.
func NewSettingsResponse(s *domain.AppSettings) SettingsResponse {
	return SettingsResponse{
		AllowUSMode:      s.AllowUSMode,
		AllowPeptides:    s.AllowPeptides,
		AllowRetatrutide: s.AllowRetatrutide,
		UpdatedAt:        s.UpdatedAt,
	}
}
