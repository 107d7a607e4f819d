// Package identity turns a bearer token into the authorization context of the
// calling user.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/internal/authz"
	pkgAuth "github.com/angelmondragon/societyhub-backend/pkg/auth"
	"github.com/angelmondragon/societyhub-backend/pkg/config"
	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
)

type userReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Resolver validates access tokens and loads the current user row. The row is
// read on every call so role changes and deactivation apply immediately.
type Resolver struct {
	users  userReader
	jwtCfg config.JWTConfig
}

func NewResolver(users userReader, jwtCfg config.JWTConfig) (*Resolver, error) {
	if users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	return &Resolver{users: users, jwtCfg: jwtCfg}, nil
}

// Resolve returns the actor for a raw bearer token.
func (r *Resolver) Resolve(ctx context.Context, token string) (authz.Actor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return authz.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthenticated, "missing credentials")
	}

	claims, err := pkgAuth.ParseAccessToken(r.jwtCfg, token)
	if err != nil {
		return authz.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthenticated, err, "invalid token")
	}

	user, err := r.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return authz.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthenticated, "user not found")
		}
		return authz.Actor{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if !user.IsActive {
		return authz.Actor{}, pkgerrors.New(pkgerrors.CodeAccountDisabled, "account is disabled")
	}
	return authz.ActorFromUser(user), nil
}
