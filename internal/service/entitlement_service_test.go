package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/glptrack/wellness-service/internal/auth"
	"github.com/glptrack/wellness-service/internal/config"
	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/observability"
	apperrors "github.com/glptrack/wellness-service/pkg/util"
)

const dayMs = int64(24 * 60 * 60 * 1000)

type fakeUserRepo struct {
	trialApplies   bool
	trialErr       error
	trialCalls     int
	trialUntil     int64
	permanentCalls int
	permanentSet   bool
}

func (f *fakeUserRepo) ActivateTrial(ctx context.Context, id string, premiumUntil int64) (bool, error) {
	f.trialCalls++
	f.trialUntil = premiumUntil
	return f.trialApplies, f.trialErr
}

func (f *fakeUserRepo) SetPermanentPremium(ctx context.Context, id string, permanent bool) error {
	f.permanentCalls++
	f.permanentSet = permanent
	return nil
}

type fakePromoRepo struct {
	promos         map[string]*domain.PromoCode
	created        []*domain.PromoCode
	userUntil      *int64
	loseRedeemRace bool
}

func (f *fakePromoRepo) Create(ctx context.Context, promo *domain.PromoCode) error {
	f.created = append(f.created, promo)
	return nil
}

func (f *fakePromoRepo) List(ctx context.Context) ([]domain.PromoCode, error) {
	out := make([]domain.PromoCode, 0, len(f.promos))
	for _, p := range f.promos {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePromoRepo) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	p, ok := f.promos[code]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

// Redeem mirrors the database stacking rule: extend from the unexpired
// window when one exists, otherwise from now.
func (f *fakePromoRepo) Redeem(ctx context.Context, promoID, userID string, now, durationMs int64) (int64, bool, error) {
	if f.loseRedeemRace {
		return 0, false, nil
	}
	base := now
	if f.userUntil != nil && *f.userUntil > now {
		base = *f.userUntil
	}
	until := base + durationMs
	f.userUntil = &until
	return until, true, nil
}

func newTestService(users *fakeUserRepo, promos *fakePromoRepo, nowMs int64) *EntitlementService {
	cfg := config.PremiumConfig{TrialDays: 60, PromoMonthDays: 30}
	svc := NewEntitlementService(users, promos, auth.NewResolver(""), nil, nil, cfg)
	return svc.WithClock(func() int64 { return nowMs })
}

func int64Ptr(v int64) *int64 { return &v }

func TestStatusPrecedence(t *testing.T) {
	now := int64(1_700_000_000_000)
	svc := newTestService(&fakeUserRepo{}, &fakePromoRepo{}, now)

	tests := []struct {
		name        string
		user        *domain.User
		wantStatus  string
		wantPremium bool
	}{
		{"nil user", nil, PremiumStatusNone, false},
		{"permanent", &domain.User{PremiumPermanent: true}, PremiumStatusPermanent, true},
		{"permanent beats expired window", &domain.User{PremiumPermanent: true, PremiumUntil: int64Ptr(now - dayMs)}, PremiumStatusPermanent, true},
		{"active subscription", &domain.User{PremiumUntil: int64Ptr(now + dayMs)}, PremiumStatusSubscription, true},
		{"legacy flag without window", &domain.User{IsPremium: true}, PremiumStatusLegacy, true},
		{"expired window", &domain.User{PremiumUntil: int64Ptr(now - 1)}, PremiumStatusExpired, false},
		{"legacy flag outlives an expired window", &domain.User{IsPremium: true, PremiumUntil: int64Ptr(now - 1)}, PremiumStatusLegacy, true},
		{"nothing at all", &domain.User{}, PremiumStatusExpired, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Status(tt.user)
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", got.Status, tt.wantStatus)
			}
			if got.IsPremium != tt.wantPremium {
				t.Errorf("isPremium = %v, want %v", got.IsPremium, tt.wantPremium)
			}
		})
	}
}

func TestStatusWindowBoundary(t *testing.T) {
	now := int64(1_700_000_000_000)
	svc := newTestService(&fakeUserRepo{}, &fakePromoRepo{}, now)

	// a window ending exactly now is already expired
	got := svc.Status(&domain.User{PremiumUntil: int64Ptr(now)})
	if got.Status != PremiumStatusExpired {
		t.Errorf("window ending now should be expired, got %q", got.Status)
	}
	got = svc.Status(&domain.User{PremiumUntil: int64Ptr(now + 1)})
	if got.Status != PremiumStatusSubscription {
		t.Errorf("window ending one ms later should be a subscription, got %q", got.Status)
	}
}

func TestActivateTrial(t *testing.T) {
	now := int64(1_700_000_000_000)
	users := &fakeUserRepo{trialApplies: true}
	metrics := observability.NewMetrics()
	cfg := config.PremiumConfig{TrialDays: 60, PromoMonthDays: 30}
	svc := NewEntitlementService(users, &fakePromoRepo{}, auth.NewResolver(""), nil, metrics, cfg).
		WithClock(func() int64 { return now })

	res, err := svc.ActivateTrial(context.Background(), &domain.User{ID: "u1"})
	if err != nil {
		t.Fatalf("ActivateTrial failed: %v", err)
	}
	if !res.Applied {
		t.Fatalf("expected grant, got decline %q", res.Reason)
	}
	wantUntil := now + 60*dayMs
	if res.PremiumUntil != wantUntil {
		t.Errorf("premiumUntil = %d, want %d", res.PremiumUntil, wantUntil)
	}
	if users.trialUntil != wantUntil {
		t.Errorf("repository received until = %d, want %d", users.trialUntil, wantUntil)
	}
	if metrics.PremiumGrants("trial") != 1 {
		t.Errorf("trial grant counter = %d, want 1", metrics.PremiumGrants("trial"))
	}
}

func TestActivateTrialAlreadyUsed(t *testing.T) {
	users := &fakeUserRepo{trialApplies: true}
	svc := newTestService(users, &fakePromoRepo{}, 1_700_000_000_000)

	res, err := svc.ActivateTrial(context.Background(), &domain.User{ID: "u1", TrialActivated: true})
	if err != nil {
		t.Fatalf("ActivateTrial failed: %v", err)
	}
	if res.Applied || res.Reason != ReasonTrialAlreadyUsed {
		t.Errorf("want decline %q, got %+v", ReasonTrialAlreadyUsed, res)
	}
	if users.trialCalls != 0 {
		t.Errorf("repository should not be hit for an already-used trial")
	}
}

func TestActivateTrialLosesRace(t *testing.T) {
	// the member snapshot predates another request that won the trial
	users := &fakeUserRepo{trialApplies: false}
	svc := newTestService(users, &fakePromoRepo{}, 1_700_000_000_000)

	res, err := svc.ActivateTrial(context.Background(), &domain.User{ID: "u1"})
	if err != nil {
		t.Fatalf("ActivateTrial failed: %v", err)
	}
	if res.Applied || res.Reason != ReasonTrialAlreadyUsed {
		t.Errorf("losing the race must decline with %q, got %+v", ReasonTrialAlreadyUsed, res)
	}
}

func TestActivateTrialMissingMember(t *testing.T) {
	// a stale token for a deleted account is not-found, not a decline
	users := &fakeUserRepo{trialErr: pgx.ErrNoRows}
	svc := newTestService(users, &fakePromoRepo{}, 1_700_000_000_000)

	_, err := svc.ActivateTrial(context.Background(), &domain.User{ID: "gone"})
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestActivateTrialUnauthenticated(t *testing.T) {
	svc := newTestService(&fakeUserRepo{}, &fakePromoRepo{}, 1_700_000_000_000)
	_, err := svc.ActivateTrial(context.Background(), nil)
	assertDomainCode(t, err, "UNAUTHENTICATED")
}

func TestRedeemPromoCode(t *testing.T) {
	now := int64(1_700_000_000_000)
	promos := &fakePromoRepo{promos: map[string]*domain.PromoCode{
		"SAVE12": {ID: "p1", Code: "SAVE12", DurationMonths: 2, ProductTitle: "Premium Duo"},
	}}
	svc := newTestService(&fakeUserRepo{}, promos, now)

	// lower-case, padded input resolves the canonical code
	res, err := svc.RedeemPromoCode(context.Background(), &domain.User{ID: "u1"}, "  save12 ")
	if err != nil {
		t.Fatalf("RedeemPromoCode failed: %v", err)
	}
	if !res.Applied {
		t.Fatalf("expected grant, got decline %q", res.Reason)
	}
	wantUntil := now + 2*30*dayMs
	if res.PremiumUntil != wantUntil {
		t.Errorf("premiumUntil = %d, want %d", res.PremiumUntil, wantUntil)
	}
	if res.ProductTitle != "Premium Duo" {
		t.Errorf("productTitle = %q, want the promo's title", res.ProductTitle)
	}
	if res.DurationMonths != 2 {
		t.Errorf("durationMonths = %d, want 2", res.DurationMonths)
	}
}

func TestRedeemPromoCodeStacks(t *testing.T) {
	now := int64(1_700_000_000_000)
	existing := now + 10*dayMs
	promos := &fakePromoRepo{
		promos:    map[string]*domain.PromoCode{"EXTEND": {ID: "p1", Code: "EXTEND", DurationMonths: 1}},
		userUntil: int64Ptr(existing),
	}
	svc := newTestService(&fakeUserRepo{}, promos, now)

	res, err := svc.RedeemPromoCode(context.Background(), &domain.User{ID: "u1"}, "EXTEND")
	if err != nil {
		t.Fatalf("RedeemPromoCode failed: %v", err)
	}
	if want := existing + 30*dayMs; res.PremiumUntil != want {
		t.Errorf("stacked premiumUntil = %d, want %d", res.PremiumUntil, want)
	}
}

func TestRedeemPromoCodeExpiredWindowRestartsFromNow(t *testing.T) {
	now := int64(1_700_000_000_000)
	promos := &fakePromoRepo{
		promos:    map[string]*domain.PromoCode{"BACK": {ID: "p1", Code: "BACK", DurationMonths: 1}},
		userUntil: int64Ptr(now - 5*dayMs),
	}
	svc := newTestService(&fakeUserRepo{}, promos, now)

	res, err := svc.RedeemPromoCode(context.Background(), &domain.User{ID: "u1"}, "BACK")
	if err != nil {
		t.Fatalf("RedeemPromoCode failed: %v", err)
	}
	if want := now + 30*dayMs; res.PremiumUntil != want {
		t.Errorf("premiumUntil = %d, want %d", res.PremiumUntil, want)
	}
}

func TestRedeemPromoCodeDeclines(t *testing.T) {
	now := int64(1_700_000_000_000)
	usedBy := "someone"
	base := func() *fakePromoRepo {
		return &fakePromoRepo{promos: map[string]*domain.PromoCode{
			"FRESH": {ID: "p1", Code: "FRESH", DurationMonths: 1},
			"SPENT": {ID: "p2", Code: "SPENT", DurationMonths: 1, UsedBy: &usedBy},
		}}
	}

	tests := []struct {
		name   string
		promos *fakePromoRepo
		code   string
		reason string
	}{
		{"empty code", base(), "   ", ReasonInvalidCode},
		{"unknown code", base(), "NOPE", ReasonInvalidCode},
		{"already redeemed", base(), "SPENT", ReasonAlreadyUsed},
		{"lost redemption race", &fakePromoRepo{
			promos:         map[string]*domain.PromoCode{"FRESH": {ID: "p1", Code: "FRESH", DurationMonths: 1}},
			loseRedeemRace: true,
		}, "FRESH", ReasonAlreadyUsed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeUserRepo{}, tt.promos, now)
			res, err := svc.RedeemPromoCode(context.Background(), &domain.User{ID: "u1"}, tt.code)
			if err != nil {
				t.Fatalf("RedeemPromoCode failed: %v", err)
			}
			if res.Applied || res.Reason != tt.reason {
				t.Errorf("want decline %q, got %+v", tt.reason, res)
			}
		})
	}
}

func TestCreatePromoCode(t *testing.T) {
	promos := &fakePromoRepo{promos: map[string]*domain.PromoCode{}}
	svc := newTestService(&fakeUserRepo{}, promos, 1_700_000_000_000)
	manager := &domain.User{ID: "m1", Role: "manager"}

	promo, err := svc.CreatePromoCode(context.Background(), manager, PromoCreateInput{Code: " welcome10 ", DurationMonths: 3})
	if err != nil {
		t.Fatalf("CreatePromoCode failed: %v", err)
	}
	if promo.Code != "WELCOME10" {
		t.Errorf("code = %q, want canonical upper-case", promo.Code)
	}
	if promo.CreatedBy != "m1" {
		t.Errorf("createdBy = %q, want %q", promo.CreatedBy, "m1")
	}
	if len(promos.created) != 1 {
		t.Errorf("repository create calls = %d, want 1", len(promos.created))
	}
}

func TestCreatePromoCodeValidation(t *testing.T) {
	svc := newTestService(&fakeUserRepo{}, &fakePromoRepo{}, 1_700_000_000_000)
	manager := &domain.User{ID: "m1", Role: "manager"}

	if _, err := svc.CreatePromoCode(context.Background(), manager, PromoCreateInput{Code: "", DurationMonths: 1}); err == nil {
		t.Error("empty code should fail validation")
	}
	if _, err := svc.CreatePromoCode(context.Background(), manager, PromoCreateInput{Code: "X", DurationMonths: 0}); err == nil {
		t.Error("zero months should fail validation")
	}
	if _, err := svc.CreatePromoCode(context.Background(), manager, PromoCreateInput{Code: "X", DurationMonths: -3}); err == nil {
		t.Error("negative months should fail validation")
	}
	// any positive duration is fine, there is no upper cap
	if _, err := svc.CreatePromoCode(context.Background(), manager, PromoCreateInput{Code: "X", DurationMonths: 240}); err != nil {
		t.Errorf("240 months should be accepted: %v", err)
	}
}

func TestCreatePromoCodeAuthorization(t *testing.T) {
	svc := newTestService(&fakeUserRepo{}, &fakePromoRepo{}, 1_700_000_000_000)

	_, err := svc.CreatePromoCode(context.Background(), nil, PromoCreateInput{Code: "X", DurationMonths: 1})
	assertDomainCode(t, err, "UNAUTHENTICATED")

	_, err = svc.CreatePromoCode(context.Background(), &domain.User{ID: "u1", Role: "moderator"}, PromoCreateInput{Code: "X", DurationMonths: 1})
	assertDomainCode(t, err, "FORBIDDEN")
}

func TestGrantPermanentPremium(t *testing.T) {
	users := &fakeUserRepo{}
	svc := newTestService(users, &fakePromoRepo{}, 1_700_000_000_000)

	err := svc.GrantPermanentPremium(context.Background(), &domain.User{ID: "m1", Role: "manager"}, "u2", true)
	assertDomainCode(t, err, "FORBIDDEN")
	if users.permanentCalls != 0 {
		t.Fatal("repository must not be hit on a forbidden grant")
	}

	if err := svc.GrantPermanentPremium(context.Background(), &domain.User{ID: "a1", Role: "admin"}, "u2", true); err != nil {
		t.Fatalf("GrantPermanentPremium failed: %v", err)
	}
	if users.permanentCalls != 1 || !users.permanentSet {
		t.Errorf("repository state = %d calls, set=%v", users.permanentCalls, users.permanentSet)
	}
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Errorf("error code = %q, want %q", de.Code, code)
	}
}
