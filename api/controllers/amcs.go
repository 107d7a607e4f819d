package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/societyhub-backend/api/responses"
	"github.com/angelmondragon/societyhub-backend/api/validators"
	"github.com/angelmondragon/societyhub-backend/internal/amcs"
	"github.com/angelmondragon/societyhub-backend/internal/authz"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
	"github.com/angelmondragon/societyhub-backend/pkg/types"
)

type AMCService interface {
	List(ctx context.Context, actor authz.Actor, filter amcs.ListFilter) ([]amcs.AMCDTO, error)
	Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*amcs.AMCDTO, error)
	Create(ctx context.Context, actor authz.Actor, societyID uuid.UUID, in amcs.AMCInput) (*amcs.AMCDTO, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, in amcs.AMCInput) (*amcs.AMCDTO, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
	AddServiceHistory(ctx context.Context, actor authz.Actor, amcID uuid.UUID, in amcs.ServiceHistoryInput) (*amcs.ServiceHistoryDTO, error)
	ListServiceHistory(ctx context.Context, actor authz.Actor, amcID uuid.UUID) ([]amcs.ServiceHistoryDTO, error)
}

type amcRequest struct {
	VendorName           *string                     `json:"vendor_name,omitempty" validate:"omitempty,min=1,max=255"`
	VendorCode           *string                     `json:"vendor_code,omitempty" validate:"omitempty,max=50"`
	ContactPerson        *string                     `json:"contact_person,omitempty"`
	ContactPhone         *string                     `json:"contact_phone,omitempty" validate:"omitempty,max=20"`
	Email                *string                     `json:"email,omitempty" validate:"omitempty,email"`
	VendorAddress        *string                     `json:"vendor_address,omitempty"`
	ServiceType          *string                     `json:"service_type,omitempty" validate:"omitempty,min=1,max=100"`
	ContractStartDate    *types.Date                 `json:"contract_start_date,omitempty"`
	ContractEndDate      *types.Date                 `json:"contract_end_date,omitempty"`
	AnnualCost           *decimal.Decimal            `json:"annual_cost,omitempty"`
	Currency             *string                     `json:"currency,omitempty" validate:"omitempty,len=3"`
	MaintenanceFrequency *enums.MaintenanceFrequency `json:"maintenance_frequency,omitempty"`
	ServiceReminderDays  *int                        `json:"service_reminder_days,omitempty" validate:"omitempty,min=0"`
	RenewalReminderDays  *int                        `json:"renewal_reminder_days,omitempty" validate:"omitempty,min=0"`
	Status               *enums.AMCStatus            `json:"status,omitempty"`
	Notes                *string                     `json:"notes,omitempty"`
}

func (r amcRequest) toInput() amcs.AMCInput {
	return amcs.AMCInput{
		VendorName:           r.VendorName,
		VendorCode:           r.VendorCode,
		ContactPerson:        r.ContactPerson,
		ContactPhone:         r.ContactPhone,
		Email:                r.Email,
		VendorAddress:        r.VendorAddress,
		ServiceType:          r.ServiceType,
		ContractStartDate:    r.ContractStartDate.TimePtr(),
		ContractEndDate:      r.ContractEndDate.TimePtr(),
		AnnualCost:           r.AnnualCost,
		Currency:             r.Currency,
		MaintenanceFrequency: r.MaintenanceFrequency,
		ServiceReminderDays:  r.ServiceReminderDays,
		RenewalReminderDays:  r.RenewalReminderDays,
		Status:               r.Status,
		Notes:                r.Notes,
	}
}

type serviceHistoryRequest struct {
	ServiceDate     types.Date       `json:"service_date"`
	ServiceType     *string          `json:"service_type,omitempty"`
	TechnicianName  *string          `json:"technician_name,omitempty"`
	WorkPerformed   *string          `json:"work_performed,omitempty"`
	IssuesFound     *string          `json:"issues_found,omitempty"`
	PartsReplaced   *string          `json:"parts_replaced,omitempty"`
	ServiceCost     *decimal.Decimal `json:"service_cost,omitempty"`
	InvoiceNumber   *string          `json:"invoice_number,omitempty"`
	NextServiceDate *types.Date      `json:"next_service_date,omitempty"`
	Rating          *int             `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Feedback        *string          `json:"feedback,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

func (r serviceHistoryRequest) toInput() amcs.ServiceHistoryInput {
	return amcs.ServiceHistoryInput{
		ServiceDate:     r.ServiceDate.Time,
		ServiceType:     r.ServiceType,
		TechnicianName:  r.TechnicianName,
		WorkPerformed:   r.WorkPerformed,
		IssuesFound:     r.IssuesFound,
		PartsReplaced:   r.PartsReplaced,
		ServiceCost:     r.ServiceCost,
		InvoiceNumber:   r.InvoiceNumber,
		NextServiceDate: r.NextServiceDate.TimePtr(),
		Rating:          r.Rating,
		Feedback:        r.Feedback,
		Notes:           r.Notes,
	}
}

func AMCList(svc AMCService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "amc")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}

		var filter amcs.ListFilter
		var err error
		if filter.Params, err = validators.ParsePagination(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.SocietyID, err = validators.ParseQueryUUID(r, "society_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.Status, err = validators.ParseQueryEnum(r, "status", enums.ParseAMCStatus); err != nil {
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

func AMCGet(svc AMCService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "amc")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "amcId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		amc, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, amc)
	}
}

func AMCCreate(svc AMCService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "amc")
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
		var payload amcRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		amc, err := svc.Create(r.Context(), actor, societyID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, amc)
	}
}

func AMCUpdate(svc AMCService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "amc")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "amcId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload amcRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		amc, err := svc.Update(r.Context(), actor, id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, amc)
	}
}

func AMCDelete(svc AMCService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "amc")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "amcId")
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

// AMCAddService records a service visit and advances the contract's service dates.
func AMCAddService(svc AMCService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "amc")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "amcId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload serviceHistoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entry, err := svc.AddServiceHistory(r.Context(), actor, id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

func AMCServiceHistory(svc AMCService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "amc")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "amcId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		history, err := svc.ListServiceHistory(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}
