package enums

import "fmt"

type IssuePriority string

const (
	IssuePriorityLow    IssuePriority = "low"
	IssuePriorityMedium IssuePriority = "medium"
	IssuePriorityHigh   IssuePriority = "high"
	IssuePriorityUrgent IssuePriority = "urgent"
)

var validIssuePrioritys = []IssuePriority{
	IssuePriorityLow,
	IssuePriorityMedium,
	IssuePriorityHigh,
	IssuePriorityUrgent,
}

// String implements fmt.Stringer.
func (i IssuePriority) String() string {
	return string(i)
}

// IsValid reports whether the value is a known IssuePriority.
func (i IssuePriority) IsValid() bool {
	for _, candidate := range validIssuePrioritys {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseIssuePriority converts raw input into a IssuePriority.
func ParseIssuePriority(value string) (IssuePriority, error) {
	for _, candidate := range validIssuePrioritys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid issue priority %q", value)
}
