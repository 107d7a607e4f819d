package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/angelmondragon/societyhub-backend/pkg/db/types"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
)

// User represents the canonical identity entity. Credentials are owned by the
// external auth provider; PasswordHash is never read by this service.
type User struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string           `gorm:"column:email;type:text;not null;uniqueIndex"`
	Phone        *string          `gorm:"column:phone;uniqueIndex"`
	FullName     string           `gorm:"column:full_name;not null"`
	PasswordHash string           `gorm:"column:password_hash;not null;default:''"`
	AvatarURL    *string          `gorm:"column:avatar_url"`
	GlobalRole   enums.GlobalRole `gorm:"column:global_role;not null;default:'member'"`
	IsActive     bool             `gorm:"column:is_active;not null;default:true"`
	Settings     dbtypes.JSONMap  `gorm:"column:settings;type:jsonb"`
	LastLogin    *time.Time       `gorm:"column:last_login"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
