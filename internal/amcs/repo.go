package amcs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/internal/repo"
	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/visibility"
)

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

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.AMC, error) {
	var amc models.AMC
	if err := r.DB(ctx).Where("id = ?", id).First(&amc).Error; err != nil {
		return nil, err
	}
	return &amc, nil
}

func (r *Repository) Create(ctx context.Context, amc *models.AMC) error {
	if amc.ID == uuid.Nil {
		amc.ID = uuid.New()
	}
	return r.DB(ctx).Create(amc).Error
}

func (r *Repository) Update(ctx context.Context, amc *models.AMC) error {
	return r.DB(ctx).Save(amc).Error
}

// Delete removes the contract; service history cascades and linked assets
// are detached.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DeleteByID(ctx, &models.AMC{}, id)
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.AMC, error) {
	db := r.DB(ctx)
	q := db.Model(&models.AMC{})
	if filter.SocietyID != nil {
		q = q.Where("society_id = ?", *filter.SocietyID)
	}
	if filter.VisibleTo != nil {
		q = q.Scopes(visibility.Scope(db, *filter.VisibleTo))
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var rows []models.AMC
	if err := r.Page(q.Order("created_at DESC"), filter.Params).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) CreateServiceHistory(ctx context.Context, entry *models.AMCServiceHistory) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.DB(ctx).Create(entry).Error
}

// RecordService moves the contract's service dates forward. A nil next date
// leaves the stored one untouched.
func (r *Repository) RecordService(ctx context.Context, id uuid.UUID, serviced time.Time, next *time.Time) error {
	updates := map[string]any{"last_service_date": serviced}
	if next != nil {
		updates["next_service_date"] = *next
	}
	return r.DB(ctx).Model(&models.AMC{}).Where("id = ?", id).Updates(updates).Error
}

// ListServiceHistory returns entries newest first.
func (r *Repository) ListServiceHistory(ctx context.Context, amcID uuid.UUID) ([]models.AMCServiceHistory, error) {
	var rows []models.AMCServiceHistory
	if err := r.DB(ctx).Where("amc_id = ?", amcID).Order("service_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
