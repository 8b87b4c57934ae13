package models

// Roles a user can hold. Admin registration is gated on a configured
// email whitelist.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether the value is a recognised role.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
