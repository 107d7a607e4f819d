package societies

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/internal/repo"
	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
)

// Repository exposes society persistence operations.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Society, error) {
	var society models.Society
	if err := r.DB(ctx).Where("id = ?", id).First(&society).Error; err != nil {
		return nil, err
	}
	return &society, nil
}

func (r *Repository) Create(ctx context.Context, society *models.Society) error {
	if society.ID == uuid.Nil {
		society.ID = uuid.New()
	}
	return r.DB(ctx).Create(society).Error
}

func (r *Repository) Update(ctx context.Context, society *models.Society) error {
	return r.DB(ctx).Save(society).Error
}

// Delete removes the society; memberships and owned records cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DeleteByID(ctx, &models.Society{}, id)
}

// Approve moves a pending society to approved. It reports false when the
// society was not pending.
func (r *Repository) Approve(ctx context.Context, id, approverID uuid.UUID, at time.Time) (bool, error) {
	res := r.DB(ctx).
		Model(&models.Society{}).
		Where("id = ? AND approval_status = ?", id, enums.ApprovalStatusPending).
		Updates(map[string]any{
			"approval_status": enums.ApprovalStatusApproved,
			"approved_by":     approverID,
			"approved_at":     at,
			"updated_at":      at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Society, error) {
	if filter.SocietyIDs != nil && len(filter.SocietyIDs) == 0 {
		return []models.Society{}, nil
	}

	q := r.DB(ctx).Model(&models.Society{})
	if filter.SocietyIDs != nil {
		q = q.Where("id IN ?", filter.SocietyIDs)
	}
	if filter.ApprovedOnly {
		q = q.Where("approval_status = ?", enums.ApprovalStatusApproved)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ?", pattern, pattern)
	}

	var rows []models.Society
	err := r.Page(q.Order("name"), filter.Params).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
