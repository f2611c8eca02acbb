package auth

// Role is the closed set of account roles.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleVendor   Role = "Vendor"
	RoleAdmin    Role = "Admin"
)

// ParseRole maps a raw string onto a known role. Unknown or empty input
// falls back to Customer, matching the registration default.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleVendor:
		return RoleVendor
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleCustomer
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
