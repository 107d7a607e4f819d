package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/societyhub-backend/api/responses"
	"github.com/angelmondragon/societyhub-backend/api/validators"
	"github.com/angelmondragon/societyhub-backend/internal/authz"
	"github.com/angelmondragon/societyhub-backend/internal/issues"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
	"github.com/angelmondragon/societyhub-backend/pkg/pagination"
	"github.com/angelmondragon/societyhub-backend/pkg/types"
)

type IssueService interface {
	List(ctx context.Context, actor authz.Actor, filter issues.ListFilter) ([]issues.IssueDTO, error)
	Create(ctx context.Context, actor authz.Actor, societyID uuid.UUID, in issues.CreateIssueInput) (*issues.IssueDTO, error)
	Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*issues.IssueDTO, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, in issues.UpdateIssueInput) (*issues.IssueDTO, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
	AddComment(ctx context.Context, actor authz.Actor, issueID uuid.UUID, in issues.CommentInput) (*issues.CommentDTO, error)
	ListComments(ctx context.Context, actor authz.Actor, issueID uuid.UUID, params pagination.Params) ([]issues.CommentDTO, error)
}

type issueCreateRequest struct {
	Title                string               `json:"title" validate:"required,min=1,max=255"`
	Description          string               `json:"description" validate:"required,min=1"`
	Category             *string              `json:"category,omitempty" validate:"omitempty,max=100"`
	Priority             *enums.IssuePriority `json:"priority,omitempty"`
	Location             *string              `json:"location,omitempty"`
	Images               []string             `json:"images,omitempty" validate:"omitempty,dive,url"`
	AttachmentURLs       []string             `json:"attachment_urls,omitempty" validate:"omitempty,dive,url"`
	TargetResolutionDate *types.Date          `json:"target_resolution_date,omitempty"`
}

func (r issueCreateRequest) toInput() issues.CreateIssueInput {
	in := issues.CreateIssueInput{
		Title:                r.Title,
		Description:          r.Description,
		Category:             r.Category,
		Location:             r.Location,
		Images:               r.Images,
		AttachmentURLs:       r.AttachmentURLs,
		TargetResolutionDate: r.TargetResolutionDate.TimePtr(),
	}
	if r.Priority != nil {
		in.Priority = *r.Priority
	}
	return in
}

type issueUpdateRequest struct {
	Title                *string              `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description          *string              `json:"description,omitempty" validate:"omitempty,min=1"`
	Category             *string              `json:"category,omitempty" validate:"omitempty,max=100"`
	Priority             *enums.IssuePriority `json:"priority,omitempty"`
	Status               *enums.IssueStatus   `json:"status,omitempty"`
	AssignedTo           *uuid.UUID           `json:"assigned_to,omitempty"`
	Location             *string              `json:"location,omitempty"`
	Images               []string             `json:"images,omitempty" validate:"omitempty,dive,url"`
	AttachmentURLs       []string             `json:"attachment_urls,omitempty" validate:"omitempty,dive,url"`
	TargetResolutionDate *types.Date          `json:"target_resolution_date,omitempty"`
	ResolutionNotes      *string              `json:"resolution_notes,omitempty"`
}

func (r issueUpdateRequest) toInput() issues.UpdateIssueInput {
	return issues.UpdateIssueInput{
		Title:                r.Title,
		Description:          r.Description,
		Category:             r.Category,
		Priority:             r.Priority,
		Status:               r.Status,
		AssignedTo:           r.AssignedTo,
		Location:             r.Location,
		Images:               r.Images,
		AttachmentURLs:       r.AttachmentURLs,
		TargetResolutionDate: r.TargetResolutionDate.TimePtr(),
		ResolutionNotes:      r.ResolutionNotes,
	}
}

type commentRequest struct {
	Comment       string  `json:"comment" validate:"required,min=1"`
	AttachmentURL *string `json:"attachment_url,omitempty" validate:"omitempty,url"`
}

// IssueList lists issues of one society (society_id) or of every society the
// caller belongs to.
func IssueList(svc IssueService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "issue")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}

		filter := issues.ListFilter{Category: validators.ParseQueryString(r, "category", 100)}
		var err error
		if filter.Params, err = validators.ParsePagination(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.SocietyID, err = validators.ParseQueryUUID(r, "society_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.Status, err = validators.ParseQueryEnum(r, "status", enums.ParseIssueStatus); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.Priority, err = validators.ParseQueryEnum(r, "priority", enums.ParseIssuePriority); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), actor, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, list, filter.Params)
	}
}

func IssueCreate(svc IssueService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "issue")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		societyID, err := validators.ParseURLUUID(r, "societyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload issueCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		issue, err := svc.Create(r.Context(), actor, societyID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, issue)
	}
}

func IssueGet(svc IssueService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "issue")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "issueId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		issue, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, issue)
	}
}

func IssueUpdate(svc IssueService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "issue")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "issueId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload issueUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		issue, err := svc.Update(r.Context(), actor, id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, issue)
	}
}

func IssueDelete(svc IssueService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "issue")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "issueId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func IssueAddComment(svc IssueService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "issue")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "issueId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload commentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		comment, err := svc.AddComment(r.Context(), actor, id, issues.CommentInput{
			Comment:       payload.Comment,
			AttachmentURL: payload.AttachmentURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, comment)
	}
}

func IssueComments(svc IssueService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "issue")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "issueId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		comments, err := svc.ListComments(r.Context(), actor, id, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, comments, params)
	}
}
