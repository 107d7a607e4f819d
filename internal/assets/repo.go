package assets

import (
	"context"

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

func (r *Repository) ListCategories(ctx context.Context, societyID uuid.UUID) ([]models.AssetCategory, error) {
	var rows []models.AssetCategory
	if err := r.DB(ctx).Where("society_id = ?", societyID).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (*models.AssetCategory, error) {
	var category models.AssetCategory
	if err := r.DB(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) CreateCategory(ctx context.Context, category *models.AssetCategory) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	return r.DB(ctx).Create(category).Error
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	var asset models.Asset
	if err := r.DB(ctx).Where("id = ?", id).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *Repository) Create(ctx context.Context, asset *models.Asset) error {
	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	return r.DB(ctx).Create(asset).Error
}

func (r *Repository) Update(ctx context.Context, asset *models.Asset) error {
	return r.DB(ctx).Save(asset).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DeleteByID(ctx, &models.Asset{}, id)
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Asset, error) {
	db := r.DB(ctx)
	q := db.Model(&models.Asset{})
	if filter.SocietyID != nil {
		q = q.Where("society_id = ?", *filter.SocietyID)
	}
	if filter.VisibleTo != nil {
		q = q.Scopes(visibility.Scope(db, *filter.VisibleTo))
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var rows []models.Asset
	if err := r.Page(q.Order("created_at DESC"), filter.Params).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
