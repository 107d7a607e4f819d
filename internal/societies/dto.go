package societies

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	"github.com/angelmondragon/societyhub-backend/pkg/pagination"
)

// SocietyDTO is the API representation of a society.
type SocietyDTO struct {
	ID             uuid.UUID            `json:"id"`
	Name           string               `json:"name"`
	Address        *string              `json:"address,omitempty"`
	City           *string              `json:"city,omitempty"`
	State          *string              `json:"state,omitempty"`
	Pincode        *string              `json:"pincode,omitempty"`
	ContactPerson  *string              `json:"contact_person,omitempty"`
	ContactEmail   *string              `json:"contact_email,omitempty"`
	ContactPhone   *string              `json:"contact_phone,omitempty"`
	LogoURL        *string              `json:"logo_url,omitempty"`
	ApprovalStatus enums.ApprovalStatus `json:"approval_status"`
	ApprovedBy     *uuid.UUID           `json:"approved_by,omitempty"`
	ApprovedAt     *time.Time           `json:"approved_at,omitempty"`
	CreatedBy      *uuid.UUID           `json:"created_by,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func FromModel(s *models.Society) *SocietyDTO {
	if s == nil {
		return nil
	}
	return &SocietyDTO{
		ID:             s.ID,
		Name:           s.Name,
		Address:        s.Address,
		City:           s.City,
		State:          s.State,
		Pincode:        s.Pincode,
		ContactPerson:  s.ContactPerson,
		ContactEmail:   s.ContactEmail,
		ContactPhone:   s.ContactPhone,
		LogoURL:        s.LogoURL,
		ApprovalStatus: s.ApprovalStatus,
		ApprovedBy:     s.ApprovedBy,
		ApprovedAt:     s.ApprovedAt,
		CreatedBy:      s.CreatedBy,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func fromModels(rows []models.Society) []SocietyDTO {
	out := make([]SocietyDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

// CreateSocietyInput captures the fields accepted when registering a society.
type CreateSocietyInput struct {
	Name          string
	Address       *string
	City          *string
	State         *string
	Pincode       *string
	ContactPerson *string
	ContactEmail  *string
	ContactPhone  *string
	LogoURL       *string
}

// UpdateSocietyInput captures the allowed society fields for mutation.
type UpdateSocietyInput struct {
	Name          *string
	Address       *string
	City          *string
	State         *string
	Pincode       *string
	ContactPerson *string
	ContactEmail  *string
	ContactPhone  *string
	LogoURL       *string
}

// ListFilter narrows society listings.
type ListFilter struct {
	Search string
	// SocietyIDs restricts results when non-nil; an empty slice matches nothing.
	SocietyIDs   []uuid.UUID
	ApprovedOnly bool
	pagination.Params
}
