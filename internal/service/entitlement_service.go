package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/glptrack/wellness-service/internal/auth"
	"github.com/glptrack/wellness-service/internal/config"
	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/events"
	"github.com/glptrack/wellness-service/internal/observability"
	"github.com/glptrack/wellness-service/pkg/util"
)

// Premium status values.
const (
	PremiumStatusNone         = "none"
	PremiumStatusPermanent    = "permanent"
	PremiumStatusSubscription = "subscription"
	PremiumStatusLegacy       = "legacy"
	PremiumStatusExpired      = "expired"
)

// Grant decline reasons.
const (
	ReasonTrialAlreadyUsed = "trial_already_used"
	ReasonInvalidCode      = "invalid_code"
	ReasonAlreadyUsed      = "already_used"
)

const millisPerDay = int64(24 * time.Hour / time.Millisecond)

// PremiumStatus describes a member's current entitlement.
type PremiumStatus struct {
	Status         string `json:"status"`
	IsPremium      bool   `json:"isPremium"`
	PremiumUntil   *int64 `json:"premiumUntil,omitempty"`
	TrialActivated bool   `json:"trialActivated"`
}

// GrantResult reports the outcome of a trial activation or promo redemption.
// A decline is not an error: Applied is false and Reason carries the cause.
type GrantResult struct {
	Applied        bool   `json:"applied"`
	Reason         string `json:"reason,omitempty"`
	PremiumUntil   int64  `json:"premiumUntil,omitempty"`
	ProductTitle   string `json:"productTitle,omitempty"`
	DurationMonths int    `json:"durationMonths,omitempty"`
}

// PromoCreateInput describes a new promo code.
type PromoCreateInput struct {
	Code           string
	DurationMonths int
	ProductID      string
	ProductTitle   string
}

// EntitlementService owns premium state transitions.
type EntitlementService struct {
	users      repositoryUser
	promos     repositoryPromo
	resolver   *auth.Resolver
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	cfg        config.PremiumConfig
	now        func() int64
}

// Narrow views of the repositories keep the service testable with fakes.
type repositoryUser interface {
	ActivateTrial(ctx context.Context, id string, premiumUntil int64) (bool, error)
	SetPermanentPremium(ctx context.Context, id string, permanent bool) error
}

type repositoryPromo interface {
	Create(ctx context.Context, promo *domain.PromoCode) error
	List(ctx context.Context) ([]domain.PromoCode, error)
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	Redeem(ctx context.Context, promoID, userID string, now, durationMs int64) (int64, bool, error)
}

// NewEntitlementService constructs the service with a wall clock.
func NewEntitlementService(users repositoryUser, promos repositoryPromo, resolver *auth.Resolver, dispatcher events.Dispatcher, metrics *observability.Metrics, cfg config.PremiumConfig) *EntitlementService {
	return &EntitlementService{
		users:      users,
		promos:     promos,
		resolver:   resolver,
		dispatcher: dispatcher,
		metrics:    metrics,
		cfg:        cfg,
		now:        func() int64 { return time.Now().UnixMilli() },
	}
}

// WithClock overrides the clock source.
func (s *EntitlementService) WithClock(now func() int64) *EntitlementService {
	s.now = now
	return s
}

// Status computes the entitlement of the given member at a single clock
// read. Precedence: permanent, unexpired subscription, legacy flag,
// expired.
func (s *EntitlementService) Status(user *domain.User) PremiumStatus {
	if user == nil {
		return PremiumStatus{Status: PremiumStatusNone}
	}
	now := s.now()

	if user.PremiumPermanent {
		return PremiumStatus{Status: PremiumStatusPermanent, IsPremium: true, TrialActivated: user.TrialActivated}
	}
	if user.PremiumUntil != nil && *user.PremiumUntil > now {
		return PremiumStatus{
			Status:         PremiumStatusSubscription,
			IsPremium:      true,
			PremiumUntil:   user.PremiumUntil,
			TrialActivated: user.TrialActivated,
		}
	}
	if user.IsPremium {
		return PremiumStatus{Status: PremiumStatusLegacy, IsPremium: true, TrialActivated: user.TrialActivated}
	}
	return PremiumStatus{
		Status:         PremiumStatusExpired,
		PremiumUntil:   user.PremiumUntil,
		TrialActivated: user.TrialActivated,
	}
}

// ActivateTrial grants the one-time trial window. The repository's
// conditional update decides the race: of two concurrent activations
// exactly one applies, the other is declined.
func (s *EntitlementService) ActivateTrial(ctx context.Context, user *domain.User) (GrantResult, error) {
	if user == nil {
		return GrantResult{}, util.NewUnauthenticated("authentication required")
	}
	if user.TrialActivated {
		return GrantResult{Reason: ReasonTrialAlreadyUsed}, nil
	}

	now := s.now()
	until := now + int64(s.cfg.TrialDays)*millisPerDay

	applied, err := s.users.ActivateTrial(ctx, user.ID, until)
	if err != nil {
		return GrantResult{}, util.MapError(err)
	}
	if !applied {
		return GrantResult{Reason: ReasonTrialAlreadyUsed}, nil
	}

	s.recordGrant(ctx, user.ID, "trial", "", until)
	return GrantResult{Applied: true, PremiumUntil: until}, nil
}

// RedeemPromoCode applies a promo code to the member's premium window.
// Codes are stored upper-case; lookup canonicalizes the input the same
// way. Stacking extends from the unexpired window when one exists,
// otherwise from now.
func (s *EntitlementService) RedeemPromoCode(ctx context.Context, user *domain.User, code string) (GrantResult, error) {
	if user == nil {
		return GrantResult{}, util.NewUnauthenticated("authentication required")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return GrantResult{Reason: ReasonInvalidCode}, nil
	}

	promo, err := s.promos.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return GrantResult{Reason: ReasonInvalidCode}, nil
		}
		return GrantResult{}, util.MapError(err)
	}
	if promo.Redeemed() {
		return GrantResult{Reason: ReasonAlreadyUsed}, nil
	}

	now := s.now()
	durationMs := int64(promo.DurationMonths) * int64(s.cfg.PromoMonthDays) * millisPerDay

	premiumUntil, applied, err := s.promos.Redeem(ctx, promo.ID, user.ID, now, durationMs)
	if err != nil {
		return GrantResult{}, util.MapError(err)
	}
	if !applied {
		// Lost the race to another redemption of the same code.
		return GrantResult{Reason: ReasonAlreadyUsed}, nil
	}

	s.recordGrant(ctx, user.ID, "promo", promo.Code, premiumUntil)
	return GrantResult{
		Applied:        true,
		PremiumUntil:   premiumUntil,
		ProductTitle:   promo.ProductTitle,
		DurationMonths: promo.DurationMonths,
	}, nil
}

// CreatePromoCode registers a new code. Managers and admins only.
func (s *EntitlementService) CreatePromoCode(ctx context.Context, actor *domain.User, input PromoCreateInput) (*domain.PromoCode, error) {
	if err := s.resolver.Require(actor, domain.RoleManager); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, util.NewValidationError("code is required", nil)
	}
	if input.DurationMonths < 1 {
		return nil, util.NewValidationError("durationMonths must be a positive integer", map[string]any{"durationMonths": input.DurationMonths})
	}

	promo := &domain.PromoCode{
		Code:           code,
		DurationMonths: input.DurationMonths,
		ProductID:      strings.TrimSpace(input.ProductID),
		ProductTitle:   strings.TrimSpace(input.ProductTitle),
		CreatedBy:      actor.ID,
		CreatedAt:      s.now(),
	}
	if err := s.promos.Create(ctx, promo); err != nil {
		return nil, util.MapError(err)
	}
	return promo, nil
}

// ListPromoCodes returns all codes, newest first. Managers and admins only.
func (s *EntitlementService) ListPromoCodes(ctx context.Context, actor *domain.User) ([]domain.PromoCode, error) {
	if err := s.resolver.Require(actor, domain.RoleManager); err != nil {
		return nil, err
	}
	promos, err := s.promos.List(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	return promos, nil
}

// GrantPermanentPremium toggles the permanent flag on a member. Admins only.
func (s *EntitlementService) GrantPermanentPremium(ctx context.Context, actor *domain.User, userID string, permanent bool) error {
	if err := s.resolver.Require(actor, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.users.SetPermanentPremium(ctx, userID, permanent); err != nil {
		return util.MapError(err)
	}
	if permanent && s.metrics != nil {
		s.metrics.RecordPremiumGrant("permanent")
	}
	return nil
}

func (s *EntitlementService) recordGrant(ctx context.Context, userID, source, promoCode string, premiumUntil int64) {
	if s.metrics != nil {
		s.metrics.RecordPremiumGrant(source)
	}
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventPremiumGranted,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload: events.PremiumGrantedPayload{
			Source:       source,
			PromoCode:    promoCode,
			PremiumUntil: premiumUntil,
		},
	})
}
