package enums

import "fmt"

type MaintenanceFrequency string

const (
	MaintenanceFrequencyMonthly    MaintenanceFrequency = "monthly"
	MaintenanceFrequencyQuarterly  MaintenanceFrequency = "quarterly"
	MaintenanceFrequencyHalfYearly MaintenanceFrequency = "half_yearly"
	MaintenanceFrequencyYearly     MaintenanceFrequency = "yearly"
)

var validMaintenanceFrequencys = []MaintenanceFrequency{
	MaintenanceFrequencyMonthly,
	MaintenanceFrequencyQuarterly,
	MaintenanceFrequencyHalfYearly,
	MaintenanceFrequencyYearly,
}

// String implements fmt.Stringer.
func (m MaintenanceFrequency) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MaintenanceFrequency.
func (m MaintenanceFrequency) IsValid() bool {
	for _, candidate := range validMaintenanceFrequencys {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMaintenanceFrequency converts raw input into a MaintenanceFrequency.
func ParseMaintenanceFrequency(value string) (MaintenanceFrequency, error) {
	for _, candidate := range validMaintenanceFrequencys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid maintenance frequency %q", value)
}
