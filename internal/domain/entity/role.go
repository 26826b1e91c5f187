package entity

// UserRole is a closed value object over the three authorization roles.
// Codes match the persisted representation.
type UserRole int

const (
	RoleAdmin   UserRole = 0
	RoleManager UserRole = 1
	RoleUser    UserRole = 2
)

// RoleFromCode maps a persisted code back to a role. Any code outside
// the defined set is rejected.
func RoleFromCode(code int) (UserRole, error) {
	switch UserRole(code) {
	case RoleAdmin, RoleManager, RoleUser:
		return UserRole(code), nil
	default:
		return 0, NewInvalidArgument("unknown role code")
	}
}

func (r UserRole) Code() int { return int(r) }

func (r UserRole) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleManager:
		return "manager"
	case RoleUser:
		return "user"
	default:
		return "unknown"
	}
}

// HasAdminPrivilege is true only for admins.
func (r UserRole) HasAdminPrivilege() bool {
	return r == RoleAdmin
}

// HasManagerPrivilege is true for admins and managers.
func (r UserRole) HasManagerPrivilege() bool {
	return r == RoleAdmin || r == RoleManager
}
