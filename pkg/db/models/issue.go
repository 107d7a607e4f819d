package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/angelmondragon/societyhub-backend/pkg/db/types"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
)

type Issue struct {
	ID                   uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SocietyID            uuid.UUID           `gorm:"column:society_id;type:uuid;not null;index"`
	Title                string              `gorm:"column:title;not null"`
	Description          string              `gorm:"column:description;not null"`
	Category             *string             `gorm:"column:category"`
	Priority             enums.IssuePriority `gorm:"column:priority;not null;default:'medium'"`
	Status               enums.IssueStatus   `gorm:"column:status;not null;default:'open'"`
	ReportedBy           uuid.UUID           `gorm:"column:reported_by;type:uuid;not null"`
	AssignedTo           *uuid.UUID          `gorm:"column:assigned_to;type:uuid"`
	Location             *string             `gorm:"column:location"`
	Images               dbtypes.StringList  `gorm:"column:images;type:jsonb"`
	AttachmentURLs       dbtypes.StringList  `gorm:"column:attachment_urls;type:jsonb"`
	IssueDate            time.Time           `gorm:"column:issue_date;not null"`
	TargetResolutionDate *time.Time          `gorm:"column:target_resolution_date"`
	ResolvedDate         *time.Time          `gorm:"column:resolved_date"`
	ResolutionNotes      *string             `gorm:"column:resolution_notes"`
	CreatedAt            time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

type IssueComment struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	IssueID       uuid.UUID `gorm:"column:issue_id;type:uuid;not null;index"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	Comment       string    `gorm:"column:comment;not null"`
	AttachmentURL *string   `gorm:"column:attachment_url"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
