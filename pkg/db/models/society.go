package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/societyhub-backend/pkg/enums"
)

// Society is the tenant every membership, issue, asset and AMC hangs off.
type Society struct {
	ID             uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string               `gorm:"column:name;not null"`
	Address        *string              `gorm:"column:address"`
	City           *string              `gorm:"column:city"`
	State          *string              `gorm:"column:state"`
	Pincode        *string              `gorm:"column:pincode"`
	ContactPerson  *string              `gorm:"column:contact_person"`
	ContactEmail   *string              `gorm:"column:contact_email"`
	ContactPhone   *string              `gorm:"column:contact_phone"`
	LogoURL        *string              `gorm:"column:logo_url"`
	ApprovalStatus enums.ApprovalStatus `gorm:"column:approval_status;not null;default:'pending'"`
	ApprovedBy     *uuid.UUID           `gorm:"column:approved_by;type:uuid"`
	ApprovedAt     *time.Time           `gorm:"column:approved_at"`
	CreatedBy      *uuid.UUID           `gorm:"column:created_by;type:uuid"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (s Society) IsApproved() bool {
	return s.ApprovalStatus == enums.ApprovalStatusApproved
}
