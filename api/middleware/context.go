package middleware

import (
	"context"

	"github.com/angelmondragon/societyhub-backend/internal/authz"
)

type contextKey string

const ctxActor contextKey = "actor"

// WithActor injects the resolved actor into the context.
func WithActor(ctx context.Context, actor authz.Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxActor, actor)
}

// ActorFromContext returns the actor placed by Auth. ok is false on
// unauthenticated routes.
func ActorFromContext(ctx context.Context) (authz.Actor, bool) {
	if ctx == nil {
		return authz.Actor{}, false
	}
	actor, ok := ctx.Value(ctxActor).(authz.Actor)
	return actor, ok
}
