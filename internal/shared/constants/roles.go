package constants

// Role is the access level carried in the session token.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// IsValidRole reports whether the string names a known role.
func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}
