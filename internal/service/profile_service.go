package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/events"
	"github.com/glptrack/wellness-service/internal/repository"
	"github.com/glptrack/wellness-service/pkg/util"
)

// ProfileService manages the member's own account surface.
type ProfileService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewProfileService constructs the service.
func NewProfileService(users repository.UserRepository, dispatcher events.Dispatcher) *ProfileService {
	return &ProfileService{users: users, dispatcher: dispatcher}
}

// Get returns the member's profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return user, nil
}

// Update applies a partial profile patch and returns the fresh profile.
func (s *ProfileService) Update(ctx context.Context, userID string, patch repository.ProfilePatch) (*domain.User, error) {
	if err := validateProfilePatch(patch); err != nil {
		return nil, err
	}
	if err := s.users.UpdateProfile(ctx, userID, patch); err != nil {
		return nil, util.MapError(err)
	}
	return s.Get(ctx, userID)
}

// CompleteOnboarding persists the onboarding answers and marks the member
// onboarded.
func (s *ProfileService) CompleteOnboarding(ctx context.Context, userID string, patch repository.ProfilePatch) (*domain.User, error) {
	if err := validateProfilePatch(patch); err != nil {
		return nil, err
	}
	// Default substance selection implies it is enabled.
	if patch.DefaultSubstanceID != nil && len(patch.EnabledSubstances) == 0 {
		patch.EnabledSubstances = []string{*patch.DefaultSubstanceID}
	}
	if err := s.users.CompleteOnboarding(ctx, userID, patch); err != nil {
		return nil, util.MapError(err)
	}
	return s.Get(ctx, userID)
}

// Delete purges the member and every record they own. Owned rows cascade
// at the schema level, so the account purge is a single statement.
func (s *ProfileService) Delete(ctx context.Context, user *domain.User) error {
	if user == nil {
		return util.NewUnauthenticated("authentication required")
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return util.MapError(err)
	}
	if s.dispatcher != nil {
		var email string
		if user.Email != nil {
			email = *user.Email
		}
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAccountDeleted,
			UserID:    user.ID,
			Timestamp: time.Now(),
			Payload:   events.AccountDeletedPayload{Email: email},
		})
	}
	return nil
}

func validateProfilePatch(patch repository.ProfilePatch) error {
	if patch.HeightCm != nil && (*patch.HeightCm < 50 || *patch.HeightCm > 300) {
		return util.NewValidationError("heightCm out of range", map[string]any{"heightCm": *patch.HeightCm})
	}
	if patch.TargetWeightKg != nil && *patch.TargetWeightKg <= 0 {
		return util.NewValidationError("targetWeightKg must be positive", nil)
	}
	if patch.StartWeightKg != nil && *patch.StartWeightKg <= 0 {
		return util.NewValidationError("startWeightKg must be positive", nil)
	}
	if patch.InjectionIntervalDays != nil && (*patch.InjectionIntervalDays < 1 || *patch.InjectionIntervalDays > 30) {
		return util.NewValidationError("injectionIntervalDays out of range", nil)
	}
	for _, pct := range []*float64{patch.CarbsPercent, patch.FatsPercent, patch.ProteinPercent} {
		if pct != nil && (*pct < 0 || *pct > 100) {
			return util.NewValidationError("macro percent out of range", nil)
		}
	}
	return nil
}
