package service

import (
	"context"

	"github.com/glptrack/wellness-service/internal/auth"
	"github.com/glptrack/wellness-service/internal/domain"
	"github.com/glptrack/wellness-service/internal/repository"
	"github.com/glptrack/wellness-service/pkg/util"
)

// AuthzService is a thin facade over the role resolver for handlers and
// sibling services, plus role administration.
type AuthzService struct {
	resolver *auth.Resolver
	users    repository.UserRepository
}

// NewAuthzService constructs the facade.
func NewAuthzService(resolver *auth.Resolver, users repository.UserRepository) *AuthzService {
	return &AuthzService{resolver: resolver, users: users}
}

// CurrentRole returns the caller's effective role.
func (s *AuthzService) CurrentRole(u *domain.User) domain.Role {
	return s.resolver.Resolve(u)
}

// IsAdmin reports admin privilege.
func (s *AuthzService) IsAdmin(u *domain.User) bool {
	return s.resolver.IsAtLeast(u, domain.RoleAdmin)
}

// IsManager reports manager-or-above privilege.
func (s *AuthzService) IsManager(u *domain.User) bool {
	return s.resolver.IsAtLeast(u, domain.RoleManager)
}

// IsModerator reports moderator-or-above privilege.
func (s *AuthzService) IsModerator(u *domain.User) bool {
	return s.resolver.IsAtLeast(u, domain.RoleModerator)
}

// RequireAdminOrManager gates editorial and catalog mutations. Returns the
// caller's id for audit fields.
func (s *AuthzService) RequireAdminOrManager(u *domain.User) (string, error) {
	if err := s.resolver.Require(u, domain.RoleManager); err != nil {
		return "", err
	}
	return u.ID, nil
}

// RequireAdmin gates admin-only mutations.
func (s *AuthzService) RequireAdmin(u *domain.User) (string, error) {
	if err := s.resolver.Require(u, domain.RoleAdmin); err != nil {
		return "", err
	}
	return u.ID, nil
}

// FindMemberByEmail looks a member up for the admin surface. Managers and
// admins.
func (s *AuthzService) FindMemberByEmail(ctx context.Context, actor *domain.User, email string) (*domain.User, error) {
	if _, err := s.RequireAdminOrManager(actor); err != nil {
		return nil, err
	}
	if email == "" {
		return nil, util.NewValidationError("email is required", nil)
	}
	member, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, util.MapError(err)
	}
	return member, nil
}

// SetMemberRole assigns a stored role to a member. Admins only; admins
// cannot demote themselves, which would lock the last admin out.
func (s *AuthzService) SetMemberRole(ctx context.Context, actor *domain.User, userID string, role domain.Role) error {
	if _, err := s.RequireAdmin(actor); err != nil {
		return err
	}
	if !role.Known() {
		return util.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}
	if actor.ID == userID && role != domain.RoleAdmin {
		return util.NewValidationError("cannot demote yourself", nil)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return util.MapError(err)
	}
	return util.MapError(s.users.SetRole(ctx, userID, role))
}
