package issues

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/internal/repo"
	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/pagination"
	"github.com/angelmondragon/societyhub-backend/pkg/visibility"
)

type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Issue, error) {
	var issue models.Issue
	if err := r.DB(ctx).Where("id = ?", id).First(&issue).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *Repository) Create(ctx context.Context, issue *models.Issue) error {
	if issue.ID == uuid.Nil {
		issue.ID = uuid.New()
	}
	return r.DB(ctx).Create(issue).Error
}

func (r *Repository) Update(ctx context.Context, issue *models.Issue) error {
	return r.DB(ctx).Save(issue).Error
}

// Delete removes the issue; comments cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DeleteByID(ctx, &models.Issue{}, id)
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Issue, error) {
	db := r.DB(ctx)
	q := db.Model(&models.Issue{})
	if filter.SocietyID != nil {
		q = q.Where("society_id = ?", *filter.SocietyID)
	}
	if filter.VisibleTo != nil {
		q = q.Scopes(visibility.Scope(db, *filter.VisibleTo))
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		q = q.Where("priority = ?", *filter.Priority)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		q = q.Where("category = ?", category)
	}

	var rows []models.Issue
	if err := r.Page(q.Order("created_at DESC"), filter.Params).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) CreateComment(ctx context.Context, comment *models.IssueComment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	return r.DB(ctx).Create(comment).Error
}

// ListComments returns the issue's comments oldest first.
func (r *Repository) ListComments(ctx context.Context, issueID uuid.UUID, params pagination.Params) ([]models.IssueComment, error) {
	var rows []models.IssueComment
	q := r.DB(ctx).Where("issue_id = ?", issueID).Order("created_at ASC")
	err := r.Page(q, params).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
