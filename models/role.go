package models

// Role is a rank-ordered permission level. Every endpoint gate goes through
// HasAtLeast; there are no per-endpoint role string comparisons.
type Role string

const (
	RoleViewer     Role = "viewer"
	RoleStaff      Role = "staff"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

var roleRank = map[Role]int{
	RoleViewer:     1,
	RoleStaff:      2,
	RoleAdmin:      3,
	RoleSuperadmin: 4,
}

// HasAtLeast reports whether r grants the permissions of required.
// Unknown roles rank below viewer.
func (r Role) HasAtLeast(required Role) bool {
	return roleRank[r] >= roleRank[required]
}

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}
