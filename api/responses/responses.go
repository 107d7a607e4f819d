package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
	"github.com/angelmondragon/societyhub-backend/pkg/pagination"
	"github.com/angelmondragon/societyhub-backend/pkg/types"
)

// requestIDHeader is set by the request id middleware before any handler runs.
const requestIDHeader = "X-Request-Id"

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.SuccessEnvelope{Data: data})
}

// WriteList writes one page of rows along with the window it was read with.
// A nil slice is rendered as an empty array.
func WriteList[T any](w http.ResponseWriter, rows []T, params pagination.Params) {
	if rows == nil {
		rows = []T{}
	}
	p := params.Normalize()
	writeJSON(w, http.StatusOK, types.SuccessEnvelope{
		Data: rows,
		Meta: &types.PageMeta{
			Skip:    p.Skip,
			Limit:   p.Limit,
			Count:   len(rows),
			HasMore: p.HasMore(len(rows)),
		},
	})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError maps err onto the error envelope. Typed domain errors keep their
// message; anything else is reported with the code's public message only.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(typed.Code())

	apiErr := types.APIError{
		Code:      string(typed.Code()),
		Message:   publicMessage(typed, meta),
		RequestID: w.Header().Get(requestIDHeader),
	}
	if meta.DetailsAllowed {
		apiErr.Details = typed.Details()
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, pkgerrors.Dump(err).Fields())
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, "request.error", err)
		} else {
			logg.Warn(ctx, "request.rejected")
		}
	}

	writeJSON(w, meta.HTTPStatus, types.ErrorEnvelope{Error: apiErr})
}

func publicMessage(typed *pkgerrors.Error, meta pkgerrors.Metadata) string {
	if !meta.Domain && typed.Code() != pkgerrors.CodeRateLimit {
		return meta.PublicMessage
	}
	if m := typed.Message(); m != "" {
		return m
	}
	return meta.PublicMessage
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
