package issues

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/internal/authz"
	"github.com/angelmondragon/societyhub-backend/pkg/db"
	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/societyhub-backend/pkg/db/types"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
	"github.com/angelmondragon/societyhub-backend/pkg/pagination"
)

type issueStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Issue, error)
	Create(ctx context.Context, issue *models.Issue) error
	Update(ctx context.Context, issue *models.Issue) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]models.Issue, error)
	CreateComment(ctx context.Context, comment *models.IssueComment) error
	ListComments(ctx context.Context, issueID uuid.UUID, params pagination.Params) ([]models.IssueComment, error)
}

type authorizer interface {
	CheckAccess(ctx context.Context, actor authz.Actor, societyID uuid.UUID) error
	CheckWriteAccess(ctx context.Context, actor authz.Actor, societyID uuid.UUID) error
	AuthorizeIssueUpdate(ctx context.Context, actor authz.Actor, societyID uuid.UUID, issue authz.IssueRef) error
	AuthorizeIssueDelete(ctx context.Context, actor authz.Actor, societyID uuid.UUID, issue authz.IssueRef) error
}

// Service tracks issues and complaints raised inside a society.
type Service struct {
	repo  issueStore
	authz authorizer
	logg  *logger.Logger
	now   func() time.Time
}

func NewService(repo issueStore, az authorizer, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("issue repo required")
	}
	if az == nil {
		return nil, fmt.Errorf("authorizer required")
	}
	return &Service{repo: repo, authz: az, logg: logg, now: func() time.Time { return time.Now().UTC() }}, nil
}

// List returns issues of one society, or across every society the actor can
// see when no society is given.
func (s *Service) List(ctx context.Context, actor authz.Actor, filter ListFilter) ([]IssueDTO, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", *filter.Status))
	}
	if filter.Priority != nil && !filter.Priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid priority %q", *filter.Priority))
	}

	filter.VisibleTo = nil
	if filter.SocietyID != nil {
		if err := s.authz.CheckAccess(ctx, actor, *filter.SocietyID); err != nil {
			return nil, err
		}
	} else if !actor.IsDeveloper() {
		userID := actor.UserID
		filter.VisibleTo = &userID
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list issues")
	}
	return fromModels(rows), nil
}

// Create files an issue on behalf of any member with access to the society.
func (s *Service) Create(ctx context.Context, actor authz.Actor, societyID uuid.UUID, in CreateIssueInput) (*IssueDTO, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if in.Priority == "" {
		in.Priority = enums.IssuePriorityMedium
	}
	if !in.Priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid priority %q", in.Priority))
	}
	if err := s.authz.CheckWriteAccess(ctx, actor, societyID); err != nil {
		return nil, err
	}

	issue := &models.Issue{
		SocietyID:            societyID,
		Title:                title,
		Description:          description,
		Category:             in.Category,
		Priority:             in.Priority,
		Status:               enums.IssueStatusOpen,
		ReportedBy:           actor.UserID,
		Location:             in.Location,
		Images:               dbtypes.StringList(in.Images),
		AttachmentURLs:       dbtypes.StringList(in.AttachmentURLs),
		IssueDate:            s.now(),
		TargetResolutionDate: in.TargetResolutionDate,
	}
	if err := s.repo.Create(ctx, issue); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "society not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create issue")
	}
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{"issue_id": issue.ID.String(), "society_id": societyID.String()})
		s.logg.Info(logCtx, "issue.created")
	}
	return FromModel(issue), nil
}

func (s *Service) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*IssueDTO, error) {
	issue, err := s.accessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return FromModel(issue), nil
}

// Update applies the edit after the ownership policy allows it. Moving into
// resolved stamps the resolution date.
func (s *Service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, in UpdateIssueInput) (*IssueDTO, error) {
	issue, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.AuthorizeIssueUpdate(ctx, actor, issue.SocietyID, refOf(issue)); err != nil {
		return nil, err
	}
	previous := issue.Status
	if err := s.applyUpdate(issue, in); err != nil {
		return nil, err
	}
	if issue.Status == enums.IssueStatusResolved && previous != enums.IssueStatusResolved {
		now := s.now()
		issue.ResolvedDate = &now
	}
	if err := s.repo.Update(ctx, issue); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update issue")
	}
	return FromModel(issue), nil
}

func (s *Service) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	issue, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authz.AuthorizeIssueDelete(ctx, actor, issue.SocietyID, refOf(issue)); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "issue not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete issue")
	}
	return nil
}

func (s *Service) AddComment(ctx context.Context, actor authz.Actor, issueID uuid.UUID, in CommentInput) (*CommentDTO, error) {
	body := strings.TrimSpace(in.Comment)
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment is required")
	}
	if _, err := s.accessible(ctx, actor, issueID); err != nil {
		return nil, err
	}
	comment := &models.IssueComment{
		IssueID:       issueID,
		UserID:        actor.UserID,
		Comment:       body,
		AttachmentURL: in.AttachmentURL,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create comment")
	}
	out := commentFromModel(comment)
	return &out, nil
}

func (s *Service) ListComments(ctx context.Context, actor authz.Actor, issueID uuid.UUID, params pagination.Params) ([]CommentDTO, error) {
	if _, err := s.accessible(ctx, actor, issueID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListComments(ctx, issueID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list comments")
	}
	out := make([]CommentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, commentFromModel(&rows[i]))
	}
	return out, nil
}

func (s *Service) accessible(ctx context.Context, actor authz.Actor, id uuid.UUID) (*models.Issue, error) {
	issue, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CheckAccess(ctx, actor, issue.SocietyID); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*models.Issue, error) {
	issue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "issue not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load issue")
	}
	return issue, nil
}

func (s *Service) applyUpdate(issue *models.Issue, in UpdateIssueInput) error {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		issue.Title = title
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "description cannot be empty")
		}
		issue.Description = description
	}
	if in.Priority != nil {
		if !in.Priority.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid priority %q", *in.Priority))
		}
		issue.Priority = *in.Priority
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", *in.Status))
		}
		issue.Status = *in.Status
	}
	if in.Category != nil {
		issue.Category = in.Category
	}
	if in.AssignedTo != nil {
		issue.AssignedTo = in.AssignedTo
	}
	if in.Location != nil {
		issue.Location = in.Location
	}
	if in.Images != nil {
		issue.Images = dbtypes.StringList(in.Images)
	}
	if in.AttachmentURLs != nil {
		issue.AttachmentURLs = dbtypes.StringList(in.AttachmentURLs)
	}
	if in.TargetResolutionDate != nil {
		issue.TargetResolutionDate = in.TargetResolutionDate
	}
	if in.ResolutionNotes != nil {
		issue.ResolutionNotes = in.ResolutionNotes
	}
	return nil
}

func refOf(issue *models.Issue) authz.IssueRef {
	return authz.IssueRef{ReportedBy: issue.ReportedBy, AssignedTo: issue.AssignedTo}
}
