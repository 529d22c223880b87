package domain

// Role names a rung on the ordered privilege hierarchy.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
)

// roleLevels is the hierarchy as data: adding a role is a table change,
// not new branch code.
var roleLevels = map[Role]int{
	RoleUser:      0,
	RoleModerator: 1,
	RoleManager:   2,
	RoleAdmin:     3,
}

// Known reports whether the role name is part of the hierarchy.
func (r Role) Known() bool {
	_, ok := roleLevels[r]
	return ok
}

// Level returns the privilege rank. Unknown roles rank as the
// least-privileged role.
func (r Role) Level() int {
	return roleLevels[r]
}

// AtLeast reports whether r sits at or above the threshold role.
func (r Role) AtLeast(threshold Role) bool {
	return r.Level() >= threshold.Level()
}
