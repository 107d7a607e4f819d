package enums

import "fmt"

// AMCStatus represents the state of a maintenance contract.
type AMCStatus string

const (
	AMCStatusActive         AMCStatus = "active"
	AMCStatusExpired        AMCStatus = "expired"
	AMCStatusCancelled      AMCStatus = "cancelled"
	AMCStatusPendingRenewal AMCStatus = "pending_renewal"
)

var validAMCStatuses = []AMCStatus{
	AMCStatusActive,
	AMCStatusExpired,
	AMCStatusCancelled,
	AMCStatusPendingRenewal,
}

// String implements fmt.Stringer.
func (a AMCStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AMCStatus.
func (a AMCStatus) IsValid() bool {
	for _, candidate := range validAMCStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAMCStatus converts raw input into a AMCStatus.
func ParseAMCStatus(value string) (AMCStatus, error) {
	for _, candidate := range validAMCStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid amc status %q", value)
}
