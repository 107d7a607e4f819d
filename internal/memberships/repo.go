package memberships

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/internal/repo"
	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
)

// Repository exposes membership persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a copy of the repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// GetMembership retrieves a membership by user and society.
func (r *Repository) GetMembership(ctx context.Context, userID, societyID uuid.UUID) (*models.UserSociety, error) {
	var membership models.UserSociety
	err := r.DB(ctx).
		Where("user_id = ? AND society_id = ?", userID, societyID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetByID retrieves a membership by its primary key.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.UserSociety, error) {
	var membership models.UserSociety
	if err := r.DB(ctx).Where("id = ?", id).First(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// Create persists a new membership record.
func (r *Repository) Create(ctx context.Context, membership *models.UserSociety) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}
	if membership.JoinedAt.IsZero() {
		membership.JoinedAt = time.Now().UTC()
	}
	return r.DB(ctx).Create(membership).Error
}

// Rerequest moves a rejected membership back to pending in place, clearing the
// rejection fields. It reports false when the row was not rejected.
func (r *Repository) Rerequest(ctx context.Context, id uuid.UUID, in JoinInput) (bool, error) {
	res := r.DB(ctx).
		Model(&models.UserSociety{}).
		Where("id = ? AND approval_status = ?", id, enums.ApprovalStatusRejected).
		Updates(map[string]any{
			"approval_status":  enums.ApprovalStatusPending,
			"role":             in.Role,
			"flat_no":          in.FlatNo,
			"wing":             in.Wing,
			"rejected_by":      nil,
			"rejected_at":      nil,
			"rejection_reason": nil,
			"updated_at":       time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Approve marks a pending membership approved. It reports false when the row
// was no longer pending.
func (r *Repository) Approve(ctx context.Context, id, approverID uuid.UUID, at time.Time) (bool, error) {
	res := r.DB(ctx).
		Model(&models.UserSociety{}).
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

// Reject marks a pending membership rejected. It reports false when the row
// was no longer pending.
func (r *Repository) Reject(ctx context.Context, id, approverID uuid.UUID, reason *string, at time.Time) (bool, error) {
	res := r.DB(ctx).
		Model(&models.UserSociety{}).
		Where("id = ? AND approval_status = ?", id, enums.ApprovalStatusPending).
		Updates(map[string]any{
			"approval_status":  enums.ApprovalStatusRejected,
			"rejected_by":      approverID,
			"rejected_at":      at,
			"rejection_reason": reason,
			"updated_at":       at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ListBySociety returns memberships for the society along with user metadata.
func (r *Repository) ListBySociety(ctx context.Context, societyID uuid.UUID, status *enums.ApprovalStatus) ([]MemberDTO, error) {
	var rows []memberRow
	q := r.DB(ctx).
		Model(&models.UserSociety{}).
		Select("user_societies.*, users.email, users.full_name, users.phone").
		Joins("JOIN users ON users.id = user_societies.user_id").
		Where("user_societies.society_id = ?", societyID)
	if status != nil {
		q = q.Where("user_societies.approval_status = ?", *status)
	}
	if err := q.Order("user_societies.created_at").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return membersFromRows(rows), nil
}

// ListApprovedSocietyIDs returns the societies where the user holds an approved membership.
func (r *Repository) ListApprovedSocietyIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.DB(ctx).
		Model(&models.UserSociety{}).
		Where("user_id = ? AND approval_status = ?", userID, enums.ApprovalStatusApproved).
		Pluck("society_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
