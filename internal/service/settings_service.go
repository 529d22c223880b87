package service

import (
	"context"
	"time"

	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/repository"
	"github.com/glptrack/wellness-service/pkg/util"
)

// SettingsInput describes the global feature toggles.
type SettingsInput struct {
	AllowUSMode      bool
	AllowPeptides    bool
	AllowRetatrutide bool
}

// SettingsService manages the single app settings document.
type SettingsService struct {
	settings repository.SettingsRepository
	authz    *AuthzService
	now      func() int64
}

// NewSettingsService constructs the service.
func NewSettingsService(settings repository.SettingsRepository, authz *AuthzService) *SettingsService {
	return &SettingsService{
		settings: settings,
		authz:    authz,
		now:      func() int64 { return time.Now().UnixMilli() },
	}
}

// Get returns the current toggles; callers need no special role.
func (s *SettingsService) Get(ctx context.Context) (*domain.AppSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	return settings, nil
}

// Update rewrites the toggles. Admins only.
func (s *SettingsService) Update(ctx context.Context, actor *domain.User, input SettingsInput) (*domain.AppSettings, error) {
	if _, err := s.authz.RequireAdmin(actor); err != nil {
		return nil, err
	}

	settings := &domain.AppSettings{
		AllowUSMode:      input.AllowUSMode,
		AllowPeptides:    input.AllowPeptides,
		AllowRetatrutide: input.AllowRetatrutide,
		UpdatedAt:        s.now(),
	}
	if err := s.settings.Upsert(ctx, settings); err != nil {
		return nil, util.MapError(err)
	}
	return settings, nil
}
