package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/societyhub-backend/pkg/enums"
)

type AssetCategory struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SocietyID   uuid.UUID  `gorm:"column:society_id;type:uuid;not null;uniqueIndex:ux_asset_categories_society_name"`
	Name        string     `gorm:"column:name;not null;uniqueIndex:ux_asset_categories_society_name"`
	Description *string    `gorm:"column:description"`
	CreatedBy   *uuid.UUID `gorm:"column:created_by;type:uuid"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

type Asset struct {
	ID                   uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SocietyID            uuid.UUID                   `gorm:"column:society_id;type:uuid;not null;index"`
	Name                 string                      `gorm:"column:name;not null"`
	CategoryID           uuid.UUID                   `gorm:"column:category_id;type:uuid;not null"`
	Description          *string                     `gorm:"column:description"`
	PurchaseDate         *time.Time                  `gorm:"column:purchase_date"`
	PurchaseCost         decimal.NullDecimal         `gorm:"column:purchase_cost;type:numeric(12,2)"`
	WarrantyExpiryDate   *time.Time                  `gorm:"column:warranty_expiry_date"`
	AMCID                *uuid.UUID                  `gorm:"column:amc_id;type:uuid"`
	Location             *string                     `gorm:"column:location"`
	AssetCode            *string                     `gorm:"column:asset_code;uniqueIndex"`
	ImageURL             *string                     `gorm:"column:image_url"`
	Status               enums.AssetStatus           `gorm:"column:status;not null;default:'active'"`
	LastMaintenanceDate  *time.Time                  `gorm:"column:last_maintenance_date"`
	NextMaintenanceDate  *time.Time                  `gorm:"column:next_maintenance_date"`
	MaintenanceFrequency *enums.MaintenanceFrequency `gorm:"column:maintenance_frequency"`
	Notes                *string                     `gorm:"column:notes"`
	CreatedBy            *uuid.UUID                  `gorm:"column:created_by;type:uuid"`
	CreatedAt            time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time                   `gorm:"column:updated_at;autoUpdateTime"`
}
