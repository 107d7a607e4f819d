package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/societyhub-backend/pkg/enums"
)

// UserSociety links a user with a society and captures the requested role and
// its approval state.
type UserSociety struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID            `gorm:"column:user_id;type:uuid;not null;uniqueIndex:ux_user_societies_user_society"`
	SocietyID       uuid.UUID            `gorm:"column:society_id;type:uuid;not null;uniqueIndex:ux_user_societies_user_society"`
	Role            enums.SocietyRole    `gorm:"column:role;not null;default:'member'"`
	ApprovalStatus  enums.ApprovalStatus `gorm:"column:approval_status;not null;default:'pending'"`
	ApprovedBy      *uuid.UUID           `gorm:"column:approved_by;type:uuid"`
	ApprovedAt      *time.Time           `gorm:"column:approved_at"`
	RejectedBy      *uuid.UUID           `gorm:"column:rejected_by;type:uuid"`
	RejectedAt      *time.Time           `gorm:"column:rejected_at"`
	RejectionReason *string              `gorm:"column:rejection_reason"`
	FlatNo          *string              `gorm:"column:flat_no"`
	Wing            *string              `gorm:"column:wing"`
	IsPrimary       bool                 `gorm:"column:is_primary;not null;default:false"`
	JoinedAt        time.Time            `gorm:"column:joined_at;not null"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (UserSociety) TableName() string { return "user_societies" }

func (m UserSociety) IsApproved() bool {
	return m.ApprovalStatus == enums.ApprovalStatusApproved
}
