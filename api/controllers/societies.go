package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/societyhub-backend/api/responses"
	"github.com/angelmondragon/societyhub-backend/api/validators"
	"github.com/angelmondragon/societyhub-backend/internal/authz"
	"github.com/angelmondragon/societyhub-backend/internal/memberships"
	"github.com/angelmondragon/societyhub-backend/internal/societies"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
)

// SocietyService is the society surface used by the HTTP layer.
type SocietyService interface {
	Create(ctx context.Context, actor authz.Actor, in societies.CreateSocietyInput) (*societies.SocietyDTO, error)
	Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*societies.SocietyDTO, error)
	List(ctx context.Context, actor authz.Actor, filter societies.ListFilter) ([]societies.SocietyDTO, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, in societies.UpdateSocietyInput) (*societies.SocietyDTO, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
	Approve(ctx context.Context, actor authz.Actor, id uuid.UUID, approved bool) (*societies.SocietyDTO, error)
}

// MembershipService is the join/approval surface used by the HTTP layer.
type MembershipService interface {
	Join(ctx context.Context, actor authz.Actor, societyID uuid.UUID, in memberships.JoinInput) (*memberships.MembershipDTO, error)
	Decide(ctx context.Context, actor authz.Actor, societyID uuid.UUID, in memberships.DecisionInput) (*memberships.MembershipDTO, error)
	ListMembers(ctx context.Context, actor authz.Actor, societyID uuid.UUID, status *enums.ApprovalStatus) ([]memberships.MemberDTO, error)
}

type societyCreateRequest struct {
	Name          string  `json:"name" validate:"required,min=1,max=255"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State         *string `json:"state,omitempty" validate:"omitempty,max=100"`
	Pincode       *string `json:"pincode,omitempty" validate:"omitempty,max=20"`
	ContactPerson *string `json:"contact_person,omitempty"`
	ContactEmail  *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone  *string `json:"contact_phone,omitempty" validate:"omitempty,max=20"`
	LogoURL       *string `json:"logo_url,omitempty" validate:"omitempty,url"`
}

func (r societyCreateRequest) toInput() societies.CreateSocietyInput {
	return societies.CreateSocietyInput{
		Name:          r.Name,
		Address:       r.Address,
		City:          r.City,
		State:         r.State,
		Pincode:       r.Pincode,
		ContactPerson: r.ContactPerson,
		ContactEmail:  r.ContactEmail,
		ContactPhone:  r.ContactPhone,
		LogoURL:       r.LogoURL,
	}
}

type societyUpdateRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State         *string `json:"state,omitempty" validate:"omitempty,max=100"`
	Pincode       *string `json:"pincode,omitempty" validate:"omitempty,max=20"`
	ContactPerson *string `json:"contact_person,omitempty"`
	ContactEmail  *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone  *string `json:"contact_phone,omitempty" validate:"omitempty,max=20"`
	LogoURL       *string `json:"logo_url,omitempty" validate:"omitempty,url"`
}

func (r societyUpdateRequest) toInput() societies.UpdateSocietyInput {
	return societies.UpdateSocietyInput{
		Name:          r.Name,
		Address:       r.Address,
		City:          r.City,
		State:         r.State,
		Pincode:       r.Pincode,
		ContactPerson: r.ContactPerson,
		ContactEmail:  r.ContactEmail,
		ContactPhone:  r.ContactPhone,
		LogoURL:       r.LogoURL,
	}
}

type societyApproveRequest struct {
	Approved *bool `json:"approved"`
}

type joinRequest struct {
	Role   *enums.SocietyRole `json:"role,omitempty"`
	FlatNo *string            `json:"flat_no,omitempty" validate:"omitempty,max=20"`
	Wing   *string            `json:"wing,omitempty" validate:"omitempty,max=20"`
}

type decisionRequest struct {
	MembershipID    uuid.UUID `json:"membership_id" validate:"required"`
	Approved        *bool     `json:"approved" validate:"required"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
}

// SocietyCreate registers a society; the caller becomes its admin.
func SocietyCreate(svc SocietyService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "society")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}

		var payload societyCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		society, err := svc.Create(r.Context(), actor, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, society)
	}
}

func SocietyList(svc SocietyService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "society")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), actor, societies.ListFilter{
			Search: validators.ParseQueryString(r, "search", 100),
			Params: params,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, list, params)
	}
}

func SocietyGet(svc SocietyService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "society")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "societyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		society, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, society)
	}
}

func SocietyUpdate(svc SocietyService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "society")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "societyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload societyUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		society, err := svc.Update(r.Context(), actor, id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, society)
	}
}

func SocietyDelete(svc SocietyService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "society")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "societyId")
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

// SocietyApprove moves a pending society to approved. Developer only. An
// omitted "approved" field means approve.
func SocietyApprove(svc SocietyService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "society")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "societyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload societyApproveRequest
		if err := validators.DecodeOptionalJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		approved := payload.Approved == nil || *payload.Approved

		society, err := svc.Approve(r.Context(), actor, id, approved)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, society)
	}
}

// SocietyMembers lists memberships of a society, optionally by status.
func SocietyMembers(svc MembershipService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "membership")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "societyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := validators.ParseQueryEnum(r, "status", enums.ParseApprovalStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		members, err := svc.ListMembers(r.Context(), actor, id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, members)
	}
}

// SocietyJoin files a membership request for the caller.
func SocietyJoin(svc MembershipService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "membership")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "societyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload joinRequest
		if err := validators.DecodeOptionalJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		in := memberships.JoinInput{Role: enums.SocietyRoleMember, FlatNo: payload.FlatNo, Wing: payload.Wing}
		if payload.Role != nil {
			in.Role = *payload.Role
		}

		membership, err := svc.Join(r.Context(), actor, id, in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, membership)
	}
}

// SocietyDecide approves or rejects a pending membership request.
func SocietyDecide(svc MembershipService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "membership")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "societyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload decisionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		membership, err := svc.Decide(r.Context(), actor, id, memberships.DecisionInput{
			MembershipID:    payload.MembershipID,
			Approved:        *payload.Approved,
			RejectionReason: payload.RejectionReason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, membership)
	}
}
