package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/angelmondragon/societyhub-backend/api/responses"
	"github.com/angelmondragon/societyhub-backend/internal/authz"
	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
)

// ActorResolver turns a bearer token into the acting user.
type ActorResolver interface {
	Resolve(ctx context.Context, token string) (authz.Actor, error)
}

// Auth validates the bearer token, reloads the user and seeds the request
// context with the resolved actor.
func Auth(resolver ActorResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthenticated, "missing credentials"))
				return
			}

			actor, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithActor(r.Context(), actor)
			if logg != nil {
				ctx = logg.WithActor(ctx, actor.UserID.String(), string(actor.GlobalRole))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 7 && strings.EqualFold(raw[:7], "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
