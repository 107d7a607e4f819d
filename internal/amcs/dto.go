package amcs

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	"github.com/angelmondragon/societyhub-backend/pkg/pagination"
)

const DefaultCurrency = "INR"

type AMCDTO struct {
	ID                   uuid.UUID                   `json:"id"`
	SocietyID            uuid.UUID                   `json:"society_id"`
	VendorName           string                      `json:"vendor_name"`
	VendorCode           *string                     `json:"vendor_code,omitempty"`
	ContactPerson        *string                     `json:"contact_person,omitempty"`
	ContactPhone         *string                     `json:"contact_phone,omitempty"`
	Email                *string                     `json:"email,omitempty"`
	VendorAddress        *string                     `json:"vendor_address,omitempty"`
	ServiceType          string                      `json:"service_type"`
	ContractStartDate    time.Time                   `json:"contract_start_date"`
	ContractEndDate      time.Time                   `json:"contract_end_date"`
	AnnualCost           *decimal.Decimal            `json:"annual_cost,omitempty"`
	Currency             string                      `json:"currency"`
	MaintenanceFrequency *enums.MaintenanceFrequency `json:"maintenance_frequency,omitempty"`
	LastServiceDate      *time.Time                  `json:"last_service_date,omitempty"`
	NextServiceDate      *time.Time                  `json:"next_service_date,omitempty"`
	ServiceReminderDays  int                         `json:"service_reminder_days"`
	RenewalReminderDays  int                         `json:"renewal_reminder_days"`
	Status               enums.AMCStatus             `json:"status"`
	Notes                *string                     `json:"notes,omitempty"`
	CreatedBy            *uuid.UUID                  `json:"created_by,omitempty"`
	CreatedAt            time.Time                   `json:"created_at"`
	UpdatedAt            time.Time                   `json:"updated_at"`
}

type ServiceHistoryDTO struct {
	ID              uuid.UUID        `json:"id"`
	AMCID           uuid.UUID        `json:"amc_id"`
	ServiceDate     time.Time        `json:"service_date"`
	ServiceType     *string          `json:"service_type,omitempty"`
	TechnicianName  *string          `json:"technician_name,omitempty"`
	WorkPerformed   *string          `json:"work_performed,omitempty"`
	IssuesFound     *string          `json:"issues_found,omitempty"`
	PartsReplaced   *string          `json:"parts_replaced,omitempty"`
	ServiceCost     *decimal.Decimal `json:"service_cost,omitempty"`
	InvoiceNumber   *string          `json:"invoice_number,omitempty"`
	NextServiceDate *time.Time       `json:"next_service_date,omitempty"`
	Rating          *int             `json:"rating,omitempty"`
	Feedback        *string          `json:"feedback,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	CreatedBy       *uuid.UUID       `json:"created_by,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// AMCInput is used for both create and partial update.
type AMCInput struct {
	VendorName           *string
	VendorCode           *string
	ContactPerson        *string
	ContactPhone         *string
	Email                *string
	VendorAddress        *string
	ServiceType          *string
	ContractStartDate    *time.Time
	ContractEndDate      *time.Time
	AnnualCost           *decimal.Decimal
	Currency             *string
	MaintenanceFrequency *enums.MaintenanceFrequency
	ServiceReminderDays  *int
	RenewalReminderDays  *int
	Status               *enums.AMCStatus
	Notes                *string
}

type ServiceHistoryInput struct {
	ServiceDate     time.Time
	ServiceType     *string
	TechnicianName  *string
	WorkPerformed   *string
	IssuesFound     *string
	PartsReplaced   *string
	ServiceCost     *decimal.Decimal
	InvoiceNumber   *string
	NextServiceDate *time.Time
	Rating          *int
	Feedback        *string
	Notes           *string
}

type ListFilter struct {
	SocietyID *uuid.UUID
	VisibleTo *uuid.UUID
	Status    *enums.AMCStatus
	pagination.Params
}

func FromModel(a *models.AMC) *AMCDTO {
	if a == nil {
		return nil
	}
	return &AMCDTO{
		ID:                   a.ID,
		SocietyID:            a.SocietyID,
		VendorName:           a.VendorName,
		VendorCode:           a.VendorCode,
		ContactPerson:        a.ContactPerson,
		ContactPhone:         a.ContactPhone,
		Email:                a.Email,
		VendorAddress:        a.VendorAddress,
		ServiceType:          a.ServiceType,
		ContractStartDate:    a.ContractStartDate,
		ContractEndDate:      a.ContractEndDate,
		AnnualCost:           decimalPtr(a.AnnualCost),
		Currency:             a.Currency,
		MaintenanceFrequency: a.MaintenanceFrequency,
		LastServiceDate:      a.LastServiceDate,
		NextServiceDate:      a.NextServiceDate,
		ServiceReminderDays:  a.ServiceReminderDays,
		RenewalReminderDays:  a.RenewalReminderDays,
		Status:               a.Status,
		Notes:                a.Notes,
		CreatedBy:            a.CreatedBy,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

func fromModels(rows []models.AMC) []AMCDTO {
	out := make([]AMCDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func historyFromModel(h *models.AMCServiceHistory) ServiceHistoryDTO {
	return ServiceHistoryDTO{
		ID:              h.ID,
		AMCID:           h.AMCID,
		ServiceDate:     h.ServiceDate,
		ServiceType:     h.ServiceType,
		TechnicianName:  h.TechnicianName,
		WorkPerformed:   h.WorkPerformed,
		IssuesFound:     h.IssuesFound,
		PartsReplaced:   h.PartsReplaced,
		ServiceCost:     decimalPtr(h.ServiceCost),
		InvoiceNumber:   h.InvoiceNumber,
		NextServiceDate: h.NextServiceDate,
		Rating:          h.Rating,
		Feedback:        h.Feedback,
		Notes:           h.Notes,
		CreatedBy:       h.CreatedBy,
		CreatedAt:       h.CreatedAt,
	}
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
