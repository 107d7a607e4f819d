package enums

import "fmt"

// SocietyRole is the role a user holds inside a single society.
type SocietyRole string

const (
	SocietyRoleAdmin   SocietyRole = "admin"
	SocietyRoleManager SocietyRole = "manager"
	SocietyRoleMember  SocietyRole = "member"
)

var validSocietyRoles = []SocietyRole{
	SocietyRoleAdmin,
	SocietyRoleManager,
	SocietyRoleMember,
}

// String implements fmt.Stringer.
func (s SocietyRole) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SocietyRole.
func (s SocietyRole) IsValid() bool {
	for _, candidate := range validSocietyRoles {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSocietyRole converts raw input into a SocietyRole.
func ParseSocietyRole(value string) (SocietyRole, error) {
	for _, candidate := range validSocietyRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid society role %q", value)
}
