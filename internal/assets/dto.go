package assets

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	"github.com/angelmondragon/societyhub-backend/pkg/pagination"
)

type CategoryDTO struct {
	ID          uuid.UUID  `json:"id"`
	SocietyID   uuid.UUID  `json:"society_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type AssetDTO struct {
	ID                   uuid.UUID                   `json:"id"`
	SocietyID            uuid.UUID                   `json:"society_id"`
	Name                 string                      `json:"name"`
	CategoryID           uuid.UUID                   `json:"category_id"`
	Description          *string                     `json:"description,omitempty"`
	PurchaseDate         *time.Time                  `json:"purchase_date,omitempty"`
	PurchaseCost         *decimal.Decimal            `json:"purchase_cost,omitempty"`
	WarrantyExpiryDate   *time.Time                  `json:"warranty_expiry_date,omitempty"`
	AMCID                *uuid.UUID                  `json:"amc_id,omitempty"`
	Location             *string                     `json:"location,omitempty"`
	AssetCode            *string                     `json:"asset_code,omitempty"`
	ImageURL             *string                     `json:"image_url,omitempty"`
	Status               enums.AssetStatus           `json:"status"`
	LastMaintenanceDate  *time.Time                  `json:"last_maintenance_date,omitempty"`
	NextMaintenanceDate  *time.Time                  `json:"next_maintenance_date,omitempty"`
	MaintenanceFrequency *enums.MaintenanceFrequency `json:"maintenance_frequency,omitempty"`
	Notes                *string                     `json:"notes,omitempty"`
	CreatedBy            *uuid.UUID                  `json:"created_by,omitempty"`
	CreatedAt            time.Time                   `json:"created_at"`
	UpdatedAt            time.Time                   `json:"updated_at"`
}

type CreateCategoryInput struct {
	Name        string
	Description *string
}

type AssetInput struct {
	Name                 *string
	CategoryID           *uuid.UUID
	Description          *string
	PurchaseDate         *time.Time
	PurchaseCost         *decimal.Decimal
	WarrantyExpiryDate   *time.Time
	AMCID                *uuid.UUID
	Location             *string
	AssetCode            *string
	ImageURL             *string
	Status               *enums.AssetStatus
	LastMaintenanceDate  *time.Time
	NextMaintenanceDate  *time.Time
	MaintenanceFrequency *enums.MaintenanceFrequency
	Notes                *string
}

// ListFilter narrows asset listings. Without a society the listing spans the
// societies visible to VisibleTo.
type ListFilter struct {
	SocietyID  *uuid.UUID
	VisibleTo  *uuid.UUID
	CategoryID *uuid.UUID
	Status     *enums.AssetStatus
	pagination.Params
}

func categoryFromModel(c *models.AssetCategory) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID,
		SocietyID:   c.SocietyID,
		Name:        c.Name,
		Description: c.Description,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromModel(a *models.Asset) *AssetDTO {
	if a == nil {
		return nil
	}
	dto := &AssetDTO{
		ID:                   a.ID,
		SocietyID:            a.SocietyID,
		Name:                 a.Name,
		CategoryID:           a.CategoryID,
		Description:          a.Description,
		PurchaseDate:         a.PurchaseDate,
		WarrantyExpiryDate:   a.WarrantyExpiryDate,
		AMCID:                a.AMCID,
		Location:             a.Location,
		AssetCode:            a.AssetCode,
		ImageURL:             a.ImageURL,
		Status:               a.Status,
		LastMaintenanceDate:  a.LastMaintenanceDate,
		NextMaintenanceDate:  a.NextMaintenanceDate,
		MaintenanceFrequency: a.MaintenanceFrequency,
		Notes:                a.Notes,
		CreatedBy:            a.CreatedBy,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
	if a.PurchaseCost.Valid {
		cost := a.PurchaseCost.Decimal
		dto.PurchaseCost = &cost
	}
	return dto
}

func fromModels(rows []models.Asset) []AssetDTO {
	out := make([]AssetDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
