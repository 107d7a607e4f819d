package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/angelmondragon/societyhub-backend/api/responses"
	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
)

// Recoverer turns a handler panic into an INTERNAL_ERROR envelope.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", rec)
				}
				if errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{
						"method": r.Method,
						"path":   r.URL.Path,
					})
					logg.Error(ctx, "panic.recovered", err)
				}
				responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
