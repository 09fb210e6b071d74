package gate

// Role is the coarse authorization level stored on every user.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleSeller     Role = "SELLER"
	RoleUser       Role = "USER"
)

// Roles lists every role in decreasing order of privilege.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleSeller, RoleUser}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleSeller, RoleUser:
		return true
	}
	return false
}

// Overrides reports whether the role bypasses granular capability flags.
func (r Role) Overrides() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}
