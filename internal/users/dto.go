package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/societyhub-backend/pkg/db/types"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	"github.com/angelmondragon/societyhub-backend/pkg/pagination"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID         uuid.UUID        `json:"id"`
	Email      string           `json:"email"`
	FullName   string           `json:"full_name"`
	Phone      *string          `json:"phone,omitempty"`
	AvatarURL  *string          `json:"avatar_url,omitempty"`
	GlobalRole enums.GlobalRole `json:"global_role"`
	IsActive   bool             `json:"is_active"`
	Settings   Settings         `json:"settings"`
	LastLogin  *time.Time       `json:"last_login,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email      string
	FullName   string
	Phone      *string
	GlobalRole enums.GlobalRole
	IsActive   *bool
}

// UpdateUserInput carries a partial profile update. Nil fields are untouched.
type UpdateUserInput struct {
	Email      *string
	Phone      *string
	FullName   *string
	AvatarURL  *string
	GlobalRole *enums.GlobalRole
	IsActive   *bool
}

// ListFilter narrows user listings.
type ListFilter struct {
	Search string
	Role   *enums.GlobalRole
	pagination.Params
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Phone:      u.Phone,
		AvatarURL:  u.AvatarURL,
		GlobalRole: u.GlobalRole,
		IsActive:   u.IsActive,
		Settings:   SettingsFromMap(u.Settings),
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func fromModels(rows []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}
	role := c.GlobalRole
	if role == "" {
		role = enums.GlobalRoleMember
	}

	return &models.User{
		Email:      c.Email,
		FullName:   c.FullName,
		Phone:      c.Phone,
		GlobalRole: role,
		IsActive:   isActive,
		Settings:   dbtypes.JSONMap{},
	}
}
