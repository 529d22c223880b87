package domain

import "testing"

func TestRoleKnown(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleModerator, RoleManager, RoleAdmin} {
		if !role.Known() {
			t.Errorf("%q should be a known role", role)
		}
	}
	for _, role := range []Role{"", "superadmin", "Admin", "USER"} {
		if role.Known() {
			t.Errorf("%q should not be a known role", role)
		}
	}
}

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role      Role
		threshold Role
		want      bool
	}{
		{RoleUser, RoleUser, true},
		{RoleUser, RoleModerator, false},
		{RoleModerator, RoleUser, true},
		{RoleModerator, RoleManager, false},
		{RoleManager, RoleModerator, true},
		{RoleManager, RoleAdmin, false},
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleUser, true},
		// unknown role names rank with the least-privileged role
		{"mystery", RoleUser, true},
		{"mystery", RoleModerator, false},
	}
	for _, tt := range tests {
		if got := tt.role.AtLeast(tt.threshold); got != tt.want {
			t.Errorf("%q.AtLeast(%q) = %v, want %v", tt.role, tt.threshold, got, tt.want)
		}
	}
}
