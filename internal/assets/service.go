package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/internal/authz"
	"github.com/angelmondragon/societyhub-backend/pkg/db"
	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
)

type assetStore interface {
	ListCategories(ctx context.Context, societyID uuid.UUID) ([]models.AssetCategory, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.AssetCategory, error)
	CreateCategory(ctx context.Context, category *models.AssetCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error)
	Create(ctx context.Context, asset *models.Asset) error
	Update(ctx context.Context, asset *models.Asset) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]models.Asset, error)
}

type societyReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Society, error)
}

type amcReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.AMC, error)
}

type authorizer interface {
	CheckAccess(ctx context.Context, actor authz.Actor, societyID uuid.UUID) error
	RequirePermission(ctx context.Context, actor authz.Actor, societyID uuid.UUID, allowed []enums.SocietyRole, action string) (enums.SocietyRole, error)
}

// Service manages the asset register and its categories.
type Service struct {
	repo      assetStore
	societies societyReader
	amcs      amcReader
	authz     authorizer
	logg      *logger.Logger
}

func NewService(repo assetStore, societies societyReader, amcs amcReader, az authorizer, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("asset repo required")
	}
	if societies == nil {
		return nil, fmt.Errorf("society repo required")
	}
	if amcs == nil {
		return nil, fmt.Errorf("amc repo required")
	}
	if az == nil {
		return nil, fmt.Errorf("authorizer required")
	}
	return &Service{repo: repo, societies: societies, amcs: amcs, authz: az, logg: logg}, nil
}

func (s *Service) ListCategories(ctx context.Context, actor authz.Actor, societyID uuid.UUID) ([]CategoryDTO, error) {
	if err := s.authz.CheckAccess(ctx, actor, societyID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListCategories(ctx, societyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list asset categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, categoryFromModel(&rows[i]))
	}
	return out, nil
}

// CreateCategory is reserved for developers. Names are unique per society.
func (s *Service) CreateCategory(ctx context.Context, actor authz.Actor, societyID uuid.UUID, in CreateCategoryInput) (*CategoryDTO, error) {
	if !actor.IsDeveloper() {
		return nil, pkgerrors.Forbidden("create asset categories")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	if _, err := s.societies.GetByID(ctx, societyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "society not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load society")
	}

	createdBy := actor.UserID
	category := &models.AssetCategory{
		SocietyID:   societyID,
		Name:        name,
		Description: in.Description,
		CreatedBy:   &createdBy,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "ux_asset_categories_society_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create asset category")
	}
	out := categoryFromModel(category)
	return &out, nil
}

func (s *Service) List(ctx context.Context, actor authz.Actor, filter ListFilter) ([]AssetDTO, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", *filter.Status))
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assets")
	}
	return fromModels(rows), nil
}

func (s *Service) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*AssetDTO, error) {
	asset, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CheckAccess(ctx, actor, asset.SocietyID); err != nil {
		return nil, err
	}
	return FromModel(asset), nil
}

// Create registers an asset. Requires society admin or manager.
func (s *Service) Create(ctx context.Context, actor authz.Actor, societyID uuid.UUID, in AssetInput) (*AssetDTO, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "asset name is required")
	}
	if in.CategoryID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category_id is required")
	}
	if _, err := s.authz.RequirePermission(ctx, actor, societyID, authz.AdminOrManager, "create assets"); err != nil {
		return nil, err
	}

	createdBy := actor.UserID
	asset := &models.Asset{
		SocietyID: societyID,
		Status:    enums.AssetStatusActive,
		CreatedBy: &createdBy,
	}
	if err := s.apply(ctx, asset, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, asset); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "asset code already in use")
		}
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "society, category or AMC not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create asset")
	}
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{"asset_id": asset.ID.String(), "society_id": societyID.String()})
		s.logg.Info(logCtx, "asset.created")
	}
	return FromModel(asset), nil
}

// Update edits an asset. Requires society admin or manager.
func (s *Service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, in AssetInput) (*AssetDTO, error) {
	asset, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.RequirePermission(ctx, actor, asset.SocietyID, authz.AdminOrManager, "update assets"); err != nil {
		return nil, err
	}
	if err := s.apply(ctx, asset, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, asset); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "asset code already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update asset")
	}
	return FromModel(asset), nil
}

// Delete removes an asset. Requires society admin.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	asset, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.authz.RequirePermission(ctx, actor, asset.SocietyID, authz.AdminOnly, "delete assets"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete asset")
	}
	return nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	asset, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load asset")
	}
	return asset, nil
}

// apply copies the set fields onto asset, checking that referenced rows live
// in the asset's society.
func (s *Service) apply(ctx context.Context, asset *models.Asset, in AssetInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "asset name cannot be empty")
		}
		asset.Name = name
	}
	if in.CategoryID != nil {
		category, err := s.repo.GetCategory(ctx, *in.CategoryID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load asset category")
		}
		if category == nil || category.SocietyID != asset.SocietyID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "asset category not found")
		}
		asset.CategoryID = category.ID
	}
	if in.AMCID != nil {
		amc, err := s.amcs.GetByID(ctx, *in.AMCID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load amc")
		}
		if amc == nil || amc.SocietyID != asset.SocietyID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "amc not found")
		}
		asset.AMCID = &amc.ID
	}
	if in.PurchaseCost != nil {
		if in.PurchaseCost.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "purchase_cost must not be negative")
		}
		asset.PurchaseCost = decimal.NewNullDecimal(*in.PurchaseCost)
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", *in.Status))
		}
		asset.Status = *in.Status
	}
	if in.MaintenanceFrequency != nil {
		if !in.MaintenanceFrequency.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid maintenance frequency %q", *in.MaintenanceFrequency))
		}
		asset.MaintenanceFrequency = in.MaintenanceFrequency
	}
	if in.Description != nil {
		asset.Description = in.Description
	}
	if in.PurchaseDate != nil {
		asset.PurchaseDate = in.PurchaseDate
	}
	if in.WarrantyExpiryDate != nil {
		asset.WarrantyExpiryDate = in.WarrantyExpiryDate
	}
	if in.Location != nil {
		asset.Location = in.Location
	}
	if in.AssetCode != nil {
		asset.AssetCode = in.AssetCode
	}
	if in.ImageURL != nil {
		asset.ImageURL = in.ImageURL
	}
	if in.LastMaintenanceDate != nil {
		asset.LastMaintenanceDate = in.LastMaintenanceDate
	}
	if in.NextMaintenanceDate != nil {
		asset.NextMaintenanceDate = in.NextMaintenanceDate
	}
	if in.Notes != nil {
		asset.Notes = in.Notes
	}
	return nil
}
