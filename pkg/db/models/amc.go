package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/societyhub-backend/pkg/enums"
)

// AMC is an annual maintenance contract with an external vendor.
type AMC struct {
	ID                   uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SocietyID            uuid.UUID                   `gorm:"column:society_id;type:uuid;not null;index"`
	VendorName           string                      `gorm:"column:vendor_name;not null"`
	VendorCode           *string                     `gorm:"column:vendor_code"`
	ContactPerson        *string                     `gorm:"column:contact_person"`
	ContactPhone         *string                     `gorm:"column:contact_phone"`
	Email                *string                     `gorm:"column:email"`
	VendorAddress        *string                     `gorm:"column:vendor_address"`
	ServiceType          string                      `gorm:"column:service_type;not null"`
	ContractStartDate    time.Time                   `gorm:"column:contract_start_date;not null"`
	ContractEndDate      time.Time                   `gorm:"column:contract_end_date;not null"`
	AnnualCost           decimal.NullDecimal         `gorm:"column:annual_cost;type:numeric(12,2)"`
	Currency             string                      `gorm:"column:currency;not null;default:'INR'"`
	MaintenanceFrequency *enums.MaintenanceFrequency `gorm:"column:maintenance_frequency"`
	LastServiceDate      *time.Time                  `gorm:"column:last_service_date"`
	NextServiceDate      *time.Time                  `gorm:"column:next_service_date"`
	ServiceReminderDays  int                         `gorm:"column:service_reminder_days;not null;default:7"`
	RenewalReminderDays  int                         `gorm:"column:renewal_reminder_days;not null;default:30"`
	Status               enums.AMCStatus             `gorm:"column:status;not null;default:'active'"`
	Notes                *string                     `gorm:"column:notes"`
	CreatedBy            *uuid.UUID                  `gorm:"column:created_by;type:uuid"`
	CreatedAt            time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time                   `gorm:"column:updated_at;autoUpdateTime"`
}

func (AMC) TableName() string { return "amcs" }

type AMCServiceHistory struct {
	ID              uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AMCID           uuid.UUID           `gorm:"column:amc_id;type:uuid;not null;index"`
	ServiceDate     time.Time           `gorm:"column:service_date;not null"`
	ServiceType     *string             `gorm:"column:service_type"`
	TechnicianName  *string             `gorm:"column:technician_name"`
	WorkPerformed   *string             `gorm:"column:work_performed"`
	IssuesFound     *string             `gorm:"column:issues_found"`
	PartsReplaced   *string             `gorm:"column:parts_replaced"`
	ServiceCost     decimal.NullDecimal `gorm:"column:service_cost;type:numeric(12,2)"`
	InvoiceNumber   *string             `gorm:"column:invoice_number"`
	NextServiceDate *time.Time          `gorm:"column:next_service_date"`
	Rating          *int                `gorm:"column:rating"`
	Feedback        *string             `gorm:"column:feedback"`
	Notes           *string             `gorm:"column:notes"`
	CreatedBy       *uuid.UUID          `gorm:"column:created_by;type:uuid"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
}

func (AMCServiceHistory) TableName() string { return "amc_service_history" }
