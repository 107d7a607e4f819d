package memberships

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
)

// MembershipDTO is the transport shape for a raw membership record.
type MembershipDTO struct {
	ID              uuid.UUID            `json:"id"`
	UserID          uuid.UUID            `json:"user_id"`
	SocietyID       uuid.UUID            `json:"society_id"`
	Role            enums.SocietyRole    `json:"role"`
	ApprovalStatus  enums.ApprovalStatus `json:"approval_status"`
	ApprovedBy      *uuid.UUID           `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time           `json:"approved_at,omitempty"`
	RejectedBy      *uuid.UUID           `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time           `json:"rejected_at,omitempty"`
	RejectionReason *string              `json:"rejection_reason,omitempty"`
	FlatNo          *string              `json:"flat_no,omitempty"`
	Wing            *string              `json:"wing,omitempty"`
	IsPrimary       bool                 `json:"is_primary"`
	JoinedAt        time.Time            `json:"joined_at"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// MemberDTO mixes membership metadata with the member's profile for society admins.
type MemberDTO struct {
	MembershipDTO
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone,omitempty"`
}

type memberRow struct {
	models.UserSociety
	Email    string
	FullName string
	Phone    *string
}

// ToDTO converts a model to the external DTO.
func ToDTO(m *models.UserSociety) *MembershipDTO {
	if m == nil {
		return nil
	}
	return &MembershipDTO{
		ID:              m.ID,
		UserID:          m.UserID,
		SocietyID:       m.SocietyID,
		Role:            m.Role,
		ApprovalStatus:  m.ApprovalStatus,
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		RejectedBy:      m.RejectedBy,
		RejectedAt:      m.RejectedAt,
		RejectionReason: m.RejectionReason,
		FlatNo:          m.FlatNo,
		Wing:            m.Wing,
		IsPrimary:       m.IsPrimary,
		JoinedAt:        m.JoinedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func membersFromRows(rows []memberRow) []MemberDTO {
	out := make([]MemberDTO, 0, len(rows))
	for i := range rows {
		out = append(out, MemberDTO{
			MembershipDTO: *ToDTO(&rows[i].UserSociety),
			Email:         rows[i].Email,
			FullName:      rows[i].FullName,
			Phone:         rows[i].Phone,
		})
	}
	return out
}

// JoinInput is a request to join a society, optionally asking for an elevated role.
type JoinInput struct {
	Role   enums.SocietyRole
	FlatNo *string
	Wing   *string
}

// DecisionInput approves or rejects a pending membership.
type DecisionInput struct {
	MembershipID    uuid.UUID
	Approved        bool
	RejectionReason *string
}
