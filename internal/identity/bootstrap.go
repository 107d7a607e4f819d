package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/internal/users"
	pkgAuth "github.com/angelmondragon/societyhub-backend/pkg/auth"
	"github.com/angelmondragon/societyhub-backend/pkg/config"
	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
)

const developerName = "Developer Admin"

type userStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// DevToken is the result of bootstrapping the local developer account.
type DevToken struct {
	UserID      uuid.UUID
	Email       string
	AccessToken string
	Created     bool
}

// IssueDeveloperToken makes sure an active developer account exists for the
// configured email and mints an access token for it. Local tooling only.
func IssueDeveloperToken(ctx context.Context, store userStore, cfg config.Config, now time.Time) (*DevToken, error) {
	if store == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if cfg.App.IsProd() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "developer tokens are disabled in production")
	}
	email := strings.ToLower(strings.TrimSpace(cfg.Bootstrap.DeveloperEmail))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "developer email is required")
	}

	created := false
	user, err := store.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user, err = store.Create(ctx, users.CreateUserDTO{
			Email:      email,
			FullName:   developerName,
			GlobalRole: enums.GlobalRoleDeveloper,
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create developer")
		}
		created = true
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load developer")
	case !user.GlobalRole.IsDeveloper() || !user.IsActive:
		user.GlobalRole = enums.GlobalRoleDeveloper
		user.IsActive = true
		if err := store.Update(ctx, user); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "promote developer")
		}
	}

	token, err := pkgAuth.MintAccessToken(cfg.JWT, now, pkgAuth.AccessTokenPayload{UserID: user.ID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	if err := store.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record login")
	}

	return &DevToken{UserID: user.ID, Email: user.Email, AccessToken: token, Created: created}, nil
}
