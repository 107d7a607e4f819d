package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/internal/authz"
	"github.com/angelmondragon/societyhub-backend/pkg/db"
	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/societyhub-backend/pkg/db/types"
	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
)

type userStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateSettings(ctx context.Context, id uuid.UUID, settings dbtypes.JSONMap) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]models.User, error)
}

// Service manages user profiles and platform-level account administration.
type Service struct {
	repo userStore
	logg *logger.Logger
}

func NewService(repo userStore, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repo required")
	}
	return &Service{repo: repo, logg: logg}, nil
}

// Get returns the actor's own profile, or any profile for platform admins.
func (s *Service) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*UserDTO, error) {
	if actor.UserID != id && !actor.IsPlatformAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you can only view your own profile")
	}
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

// Update applies a profile update. Role and activation changes are limited
// to platform admins, and only a developer may grant or revoke developer.
func (s *Service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, in UpdateUserInput) (*UserDTO, error) {
	if actor.UserID != id && !actor.IsPlatformAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you can only update your own profile")
	}
	if in.GlobalRole != nil && !actor.IsPlatformAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you cannot change your own role")
	}
	if in.IsActive != nil && !actor.IsPlatformAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you cannot change activation status")
	}
	if in.GlobalRole != nil && !in.GlobalRole.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid global role %q", *in.GlobalRole))
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.GlobalRole != nil && *in.GlobalRole != user.GlobalRole {
		if (in.GlobalRole.IsDeveloper() || user.GlobalRole.IsDeveloper()) && !actor.IsDeveloper() {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only a developer can grant or revoke the developer role")
		}
		user.GlobalRole = *in.GlobalRole
	}
	if in.IsActive != nil && *in.IsActive != user.IsActive {
		if user.GlobalRole.IsDeveloper() && !actor.IsDeveloper() {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only a developer can change a developer's activation status")
		}
		user.IsActive = *in.IsActive
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty")
		}
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name cannot be empty")
		}
		user.FullName = name
	}
	if in.Phone != nil {
		user.Phone = in.Phone
	}
	if in.AvatarURL != nil {
		user.AvatarURL = in.AvatarURL
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email or phone already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}

	if s.logg != nil && (in.GlobalRole != nil || in.IsActive != nil) {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"target_user_id": user.ID.String(),
			"global_role":    string(user.GlobalRole),
			"is_active":      user.IsActive,
		})
		s.logg.Info(logCtx, "user.access_changed")
	}
	return FromModel(user), nil
}

// List returns users for platform admins.
func (s *Service) List(ctx context.Context, actor authz.Actor, filter ListFilter) ([]UserDTO, error) {
	if !actor.IsPlatformAdmin() {
		return nil, pkgerrors.Forbidden("list users")
	}
	if filter.Role != nil && !filter.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid global role %q", *filter.Role))
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return fromModels(rows), nil
}

// Delete removes another user's account. Platform admins only; developer
// accounts can only be removed by a developer.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if !actor.IsPlatformAdmin() {
		return pkgerrors.Forbidden("delete users")
	}
	if actor.UserID == id {
		return pkgerrors.New(pkgerrors.CodeValidation, "you cannot delete your own account")
	}
	target, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if target.GlobalRole.IsDeveloper() && !actor.IsDeveloper() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only a developer can delete a developer account")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "target_user_id", id.String()), "user.deleted")
	}
	return nil
}

func (s *Service) GetSettings(ctx context.Context, actor authz.Actor) (Settings, error) {
	user, err := s.load(ctx, actor.UserID)
	if err != nil {
		return Settings{}, err
	}
	return SettingsFromMap(user.Settings), nil
}

// UpdateSettings merges the patch into the actor's stored settings.
func (s *Service) UpdateSettings(ctx context.Context, actor authz.Actor, patch SettingsPatch) (Settings, error) {
	user, err := s.load(ctx, actor.UserID)
	if err != nil {
		return Settings{}, err
	}
	merged := patch.Merge(user.Settings)
	if err := s.repo.UpdateSettings(ctx, user.ID, merged); err != nil {
		return Settings{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update settings")
	}
	return SettingsFromMap(merged), nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
	}
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}
