package entity

// Role is the coarse-grained permission tier gating mutating endpoints.
// Roles are fixed at signup; there is no role-update operation.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole maps an incoming string to a known role.
// Empty input defaults to RoleUser; anything else is rejected.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "":
		return RoleUser, true
	case RoleUser, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

func (r Role) String() string { return string(r) }
