package constants

const (
	Buyer  = "buyer"
	Seller = "seller"
)

// ValidRoles is the set of allowed DB enum values for profile role.
var ValidRoles = []string{Buyer, Seller}

// IsValidRole returns true if role is one of the allowed enum values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
