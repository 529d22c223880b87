package auth

import (
	"errors"
	"testing"

	"github.com/glptrack/wellness-service/internal/domain"
	apperrors "github.com/glptrack/wellness-service/pkg/util"
)

func strPtr(s string) *string { return &s }

func TestResolve(t *testing.T) {
	r := NewResolver("boss@example.com")

	tests := []struct {
		name string
		user *domain.User
		want domain.Role
	}{
		{"nil user", nil, domain.RoleUser},
		{"no role stored", &domain.User{ID: "u1"}, domain.RoleUser},
		{"stored moderator", &domain.User{ID: "u1", Role: "moderator"}, domain.RoleModerator},
		{"stored admin", &domain.User{ID: "u1", Role: "admin"}, domain.RoleAdmin},
		{"unknown role degrades", &domain.User{ID: "u1", Role: "wizard"}, domain.RoleUser},
		{"superuser email overrides stored role", &domain.User{ID: "u1", Email: strPtr("boss@example.com"), Role: "user"}, domain.RoleAdmin},
		{"other email keeps stored role", &domain.User{ID: "u1", Email: strPtr("member@example.com"), Role: "manager"}, domain.RoleManager},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.user); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveNoSuperuserConfigured(t *testing.T) {
	r := NewResolver("")
	u := &domain.User{ID: "u1", Email: strPtr("boss@example.com"), Role: "user"}
	if got := r.Resolve(u); got != domain.RoleUser {
		t.Errorf("empty superuser email must disable the override, got %q", got)
	}
}

func TestRequire(t *testing.T) {
	r := NewResolver("")

	err := r.Require(nil, domain.RoleUser)
	assertErrorCode(t, err, "UNAUTHENTICATED")

	err = r.Require(&domain.User{ID: "u1", Role: "user"}, domain.RoleManager)
	assertErrorCode(t, err, "FORBIDDEN")

	if err := r.Require(&domain.User{ID: "u1", Role: "manager"}, domain.RoleManager); err != nil {
		t.Errorf("manager should pass a manager threshold, got %v", err)
	}
	if err := r.Require(&domain.User{ID: "u1", Role: "admin"}, domain.RoleModerator); err != nil {
		t.Errorf("admin should pass a moderator threshold, got %v", err)
	}
}

func assertErrorCode(t *testing.T, err error, code string) {
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
