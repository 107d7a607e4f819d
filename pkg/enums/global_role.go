package enums

import "fmt"

// GlobalRole is the account-wide role assigned to every user.
type GlobalRole string

const (
	GlobalRoleDeveloper GlobalRole = "developer"
	GlobalRoleAdmin     GlobalRole = "admin"
	GlobalRoleManager   GlobalRole = "manager"
	GlobalRoleMember    GlobalRole = "member"
)

var validGlobalRoles = []GlobalRole{
	GlobalRoleDeveloper,
	GlobalRoleAdmin,
	GlobalRoleManager,
	GlobalRoleMember,
}

// String implements fmt.Stringer.
func (g GlobalRole) String() string {
	return string(g)
}

// IsValid reports whether the value is a known GlobalRole.
func (g GlobalRole) IsValid() bool {
	for _, candidate := range validGlobalRoles {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGlobalRole converts raw input into a GlobalRole.
func ParseGlobalRole(value string) (GlobalRole, error) {
	for _, candidate := range validGlobalRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid global role %q", value)
}

// IsDeveloper reports whether the role bypasses society-level checks.
func (g GlobalRole) IsDeveloper() bool {
	return g == GlobalRoleDeveloper
}

// IsPlatformAdmin reports whether the role may manage other user accounts.
func (g GlobalRole) IsPlatformAdmin() bool {
	return g == GlobalRoleDeveloper || g == GlobalRoleAdmin
}
