package controllers

import (
	"net/http"

	"github.com/angelmondragon/societyhub-backend/api/middleware"
	"github.com/angelmondragon/societyhub-backend/api/responses"
	"github.com/angelmondragon/societyhub-backend/internal/authz"
	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
)

// actorOrError returns the authenticated actor, writing an Unauthenticated
// error when the route was mounted without Auth.
func actorOrError(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (authz.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthenticated, "user context missing"))
		return authz.Actor{}, false
	}
	return actor, true
}

func serviceUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger, name string) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, name+" service unavailable"))
}
