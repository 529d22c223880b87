package auth

import (
	"github.com/glptrack/wellness-service/internal/domain"
	apperrors "github.com/glptrack/wellness-service/pkg/util"
)

// Resolver classifies a member's privilege level. The superuser email is
// process-wide static configuration, fixed at startup.
type Resolver struct {
	superuserEmail string
}

// NewResolver builds a resolver with the configured superuser override.
// An empty email disables the override.
func NewResolver(superuserEmail string) *Resolver {
	return &Resolver{superuserEmail: superuserEmail}
}

// Resolve returns the effective role. The superuser email always resolves
// to admin regardless of the stored role; absent or unrecognized role
// strings degrade to the least-privileged role. Resolve never fails.
func (r *Resolver) Resolve(u *domain.User) domain.Role {
	if u == nil {
		return domain.RoleUser
	}
	if r.superuserEmail != "" && u.Email != nil && *u.Email == r.superuserEmail {
		return domain.RoleAdmin
	}
	role := domain.Role(u.Role)
	if !role.Known() {
		return domain.RoleUser
	}
	return role
}

// IsAtLeast reports whether the member's effective role meets the threshold.
func (r *Resolver) IsAtLeast(u *domain.User, threshold domain.Role) bool {
	if u == nil {
		return false
	}
	return r.Resolve(u).AtLeast(threshold)
}

// Require is the gate privileged mutations call before proceeding. A nil
// user fails as unauthenticated, a present user below the threshold as
// forbidden; the two must stay distinguishable for callers.
func (r *Resolver) Require(u *domain.User, threshold domain.Role) error {
	if u == nil {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	if !r.IsAtLeast(u, threshold) {
		return apperrors.NewForbidden("insufficient role")
	}
	return nil
}
