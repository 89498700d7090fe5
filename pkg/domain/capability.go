package domain

// Capability is a caller permission carried in the access token's scope
// claim. The scope resolver requires the matching read/write capability, or
// the admin capability which short-circuits all group checks.
type Capability string

const (
	CapabilityOrganizationsAdmin Capability = "admin:organizations"
	CapabilityOrganizationsWrite Capability = "write:organizations"
	CapabilityOrganizationsRead  Capability = "read:organizations"
	CapabilityUsersAdmin         Capability = "admin:users"
	CapabilityUsersWrite         Capability = "write:users"
	CapabilityUsersRead          Capability = "read:users"
)

func (c Capability) String() string {
	return string(c)
}

// HasCapability reports whether the capability set carries cap.
func HasCapability(caps []Capability, cap Capability) bool {
	for _, c := range caps {
		if c == cap {
			return true
		}
	}
	return false
}
