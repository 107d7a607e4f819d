package enums

import "fmt"

// AssetStatus represents the operational state of an asset.
type AssetStatus string

const (
	AssetStatusActive         AssetStatus = "active"
	AssetStatusInactive       AssetStatus = "inactive"
	AssetStatusMaintenance    AssetStatus = "maintenance"
	AssetStatusDecommissioned AssetStatus = "decommissioned"
)

var validAssetStatuses = []AssetStatus{
	AssetStatusActive,
	AssetStatusInactive,
	AssetStatusMaintenance,
	AssetStatusDecommissioned,
}

// String implements fmt.Stringer.
func (a AssetStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AssetStatus.
func (a AssetStatus) IsValid() bool {
	for _, candidate := range validAssetStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAssetStatus converts raw input into a AssetStatus.
func ParseAssetStatus(value string) (AssetStatus, error) {
	for _, candidate := range validAssetStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid asset status %q", value)
}
