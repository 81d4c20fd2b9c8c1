package auth

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}
