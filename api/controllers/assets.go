package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/societyhub-backend/api/responses"
	"github.com/angelmondragon/societyhub-backend/api/validators"
	"github.com/angelmondragon/societyhub-backend/internal/assets"
	"github.com/angelmondragon/societyhub-backend/internal/authz"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
	"github.com/angelmondragon/societyhub-backend/pkg/types"
)

type AssetService interface {
	ListCategories(ctx context.Context, actor authz.Actor, societyID uuid.UUID) ([]assets.CategoryDTO, error)
	CreateCategory(ctx context.Context, actor authz.Actor, societyID uuid.UUID, in assets.CreateCategoryInput) (*assets.CategoryDTO, error)
	List(ctx context.Context, actor authz.Actor, filter assets.ListFilter) ([]assets.AssetDTO, error)
	Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*assets.AssetDTO, error)
	Create(ctx context.Context, actor authz.Actor, societyID uuid.UUID, in assets.AssetInput) (*assets.AssetDTO, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, in assets.AssetInput) (*assets.AssetDTO, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
}

type categoryCreateRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty"`
}

type assetRequest struct {
	Name                 *string                     `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	CategoryID           *uuid.UUID                  `json:"category_id,omitempty"`
	Description          *string                     `json:"description,omitempty"`
	PurchaseDate         *types.Date                 `json:"purchase_date,omitempty"`
	PurchaseCost         *decimal.Decimal            `json:"purchase_cost,omitempty"`
	WarrantyExpiryDate   *types.Date                 `json:"warranty_expiry_date,omitempty"`
	AMCID                *uuid.UUID                  `json:"amc_id,omitempty"`
	Location             *string                     `json:"location,omitempty"`
	AssetCode            *string                     `json:"asset_code,omitempty" validate:"omitempty,max=50"`
	ImageURL             *string                     `json:"image_url,omitempty" validate:"omitempty,url"`
	Status               *enums.AssetStatus          `json:"status,omitempty"`
	LastMaintenanceDate  *types.Date                 `json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate  *types.Date                 `json:"next_maintenance_date,omitempty"`
	MaintenanceFrequency *enums.MaintenanceFrequency `json:"maintenance_frequency,omitempty"`
	Notes                *string                     `json:"notes,omitempty"`
}

func (r assetRequest) toInput() assets.AssetInput {
	return assets.AssetInput{
		Name:                 r.Name,
		CategoryID:           r.CategoryID,
		Description:          r.Description,
		PurchaseDate:         r.PurchaseDate.TimePtr(),
		PurchaseCost:         r.PurchaseCost,
		WarrantyExpiryDate:   r.WarrantyExpiryDate.TimePtr(),
		AMCID:                r.AMCID,
		Location:             r.Location,
		AssetCode:            r.AssetCode,
		ImageURL:             r.ImageURL,
		Status:               r.Status,
		LastMaintenanceDate:  r.LastMaintenanceDate.TimePtr(),
		NextMaintenanceDate:  r.NextMaintenanceDate.TimePtr(),
		MaintenanceFrequency: r.MaintenanceFrequency,
		Notes:                r.Notes,
	}
}

func AssetCategoryList(svc AssetService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "asset")
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
		list, err := svc.ListCategories(r.Context(), actor, societyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AssetCategoryCreate adds a category to a society. Developer only.
func AssetCategoryCreate(svc AssetService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "asset")
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
		var payload categoryCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.CreateCategory(r.Context(), actor, societyID, assets.CreateCategoryInput{
			Name:        payload.Name,
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

func AssetList(svc AssetService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "asset")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}

		var filter assets.ListFilter
		var err error
		if filter.Params, err = validators.ParsePagination(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.SocietyID, err = validators.ParseQueryUUID(r, "society_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.CategoryID, err = validators.ParseQueryUUID(r, "category_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.Status, err = validators.ParseQueryEnum(r, "status", enums.ParseAssetStatus); err != nil {
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

func AssetGet(svc AssetService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "asset")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "assetId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		asset, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, asset)
	}
}

func AssetCreate(svc AssetService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "asset")
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
		var payload assetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		asset, err := svc.Create(r.Context(), actor, societyID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, asset)
	}
}

func AssetUpdate(svc AssetService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "asset")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "assetId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload assetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		asset, err := svc.Update(r.Context(), actor, id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, asset)
	}
}

func AssetDelete(svc AssetService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "asset")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "assetId")
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
