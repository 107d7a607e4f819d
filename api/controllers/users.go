package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/societyhub-backend/api/responses"
	"github.com/angelmondragon/societyhub-backend/api/validators"
	"github.com/angelmondragon/societyhub-backend/internal/authz"
	"github.com/angelmondragon/societyhub-backend/internal/users"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
)

type UserService interface {
	Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*users.UserDTO, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, in users.UpdateUserInput) (*users.UserDTO, error)
	List(ctx context.Context, actor authz.Actor, filter users.ListFilter) ([]users.UserDTO, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
	GetSettings(ctx context.Context, actor authz.Actor) (users.Settings, error)
	UpdateSettings(ctx context.Context, actor authz.Actor, patch users.SettingsPatch) (users.Settings, error)
}

type userUpdateRequest struct {
	Email      *string           `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string           `json:"phone,omitempty" validate:"omitempty,max=20"`
	FullName   *string           `json:"full_name,omitempty" validate:"omitempty,min=1,max=255"`
	AvatarURL  *string           `json:"avatar_url,omitempty" validate:"omitempty,url"`
	GlobalRole *enums.GlobalRole `json:"global_role,omitempty"`
	IsActive   *bool             `json:"is_active,omitempty"`
}

func (r userUpdateRequest) toInput() users.UpdateUserInput {
	return users.UpdateUserInput{
		Email:      r.Email,
		Phone:      r.Phone,
		FullName:   r.FullName,
		AvatarURL:  r.AvatarURL,
		GlobalRole: r.GlobalRole,
		IsActive:   r.IsActive,
	}
}

// UserMe returns the caller's own profile.
func UserMe(svc UserService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "user")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		user, err := svc.Get(r.Context(), actor, actor.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// UserUpdateMe edits the caller's own profile.
func UserUpdateMe(svc UserService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "user")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		var payload userUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.Update(r.Context(), actor, actor.UserID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

func UserList(svc UserService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "user")
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
		role, err := validators.ParseQueryEnum(r, "role", enums.ParseGlobalRole)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), actor, users.ListFilter{
			Search: validators.ParseQueryString(r, "search", 100),
			Role:   role,
			Params: params,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, list, params)
	}
}

func UserGet(svc UserService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "user")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

func UserUpdate(svc UserService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "user")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload userUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		user, err := svc.Update(r.Context(), actor, id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

func UserDelete(svc UserService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "user")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLUUID(r, "userId")
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

func UserSettings(svc UserService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "user")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		settings, err := svc.GetSettings(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}

// UserUpdateSettings merges the supplied keys into the caller's settings.
func UserUpdateSettings(svc UserService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "user")
			return
		}
		actor, ok := actorOrError(w, r, logg)
		if !ok {
			return
		}
		var patch users.SettingsPatch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		settings, err := svc.UpdateSettings(r.Context(), actor, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}
