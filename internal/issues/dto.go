package issues

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	"github.com/angelmondragon/societyhub-backend/pkg/pagination"
)

type IssueDTO struct {
	ID                   uuid.UUID           `json:"id"`
	SocietyID            uuid.UUID           `json:"society_id"`
	Title                string              `json:"title"`
	Description          string              `json:"description"`
	Category             *string             `json:"category,omitempty"`
	Priority             enums.IssuePriority `json:"priority"`
	Status               enums.IssueStatus   `json:"status"`
	ReportedBy           uuid.UUID           `json:"reported_by"`
	AssignedTo           *uuid.UUID          `json:"assigned_to,omitempty"`
	Location             *string             `json:"location,omitempty"`
	Images               []string            `json:"images"`
	AttachmentURLs       []string            `json:"attachment_urls"`
	IssueDate            time.Time           `json:"issue_date"`
	TargetResolutionDate *time.Time          `json:"target_resolution_date,omitempty"`
	ResolvedDate         *time.Time          `json:"resolved_date,omitempty"`
	ResolutionNotes      *string             `json:"resolution_notes,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

type CommentDTO struct {
	ID            uuid.UUID `json:"id"`
	IssueID       uuid.UUID `json:"issue_id"`
	UserID        uuid.UUID `json:"user_id"`
	Comment       string    `json:"comment"`
	AttachmentURL *string   `json:"attachment_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type CreateIssueInput struct {
	Title                string
	Description          string
	Category             *string
	Priority             enums.IssuePriority
	Location             *string
	Images               []string
	AttachmentURLs       []string
	TargetResolutionDate *time.Time
}

// UpdateIssueInput is a partial update; nil fields are left as they are.
type UpdateIssueInput struct {
	Title                *string
	Description          *string
	Category             *string
	Priority             *enums.IssuePriority
	Status               *enums.IssueStatus
	AssignedTo           *uuid.UUID
	Location             *string
	Images               []string
	AttachmentURLs       []string
	TargetResolutionDate *time.Time
	ResolutionNotes      *string
}

type CommentInput struct {
	Comment       string
	AttachmentURL *string
}

// ListFilter narrows issue listings. SocietyID scopes to one society;
// VisibleTo restricts to the approved societies of that user.
type ListFilter struct {
	SocietyID *uuid.UUID
	VisibleTo *uuid.UUID
	Status    *enums.IssueStatus
	Priority  *enums.IssuePriority
	Category  string
	pagination.Params
}

func FromModel(i *models.Issue) *IssueDTO {
	if i == nil {
		return nil
	}
	return &IssueDTO{
		ID:                   i.ID,
		SocietyID:            i.SocietyID,
		Title:                i.Title,
		Description:          i.Description,
		Category:             i.Category,
		Priority:             i.Priority,
		Status:               i.Status,
		ReportedBy:           i.ReportedBy,
		AssignedTo:           i.AssignedTo,
		Location:             i.Location,
		Images:               nonNil(i.Images),
		AttachmentURLs:       nonNil(i.AttachmentURLs),
		IssueDate:            i.IssueDate,
		TargetResolutionDate: i.TargetResolutionDate,
		ResolvedDate:         i.ResolvedDate,
		ResolutionNotes:      i.ResolutionNotes,
		CreatedAt:            i.CreatedAt,
		UpdatedAt:            i.UpdatedAt,
	}
}

func fromModels(rows []models.Issue) []IssueDTO {
	out := make([]IssueDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func commentFromModel(c *models.IssueComment) CommentDTO {
	return CommentDTO{
		ID:            c.ID,
		IssueID:       c.IssueID,
		UserID:        c.UserID,
		Comment:       c.Comment,
		AttachmentURL: c.AttachmentURL,
		CreatedAt:     c.CreatedAt,
	}
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
