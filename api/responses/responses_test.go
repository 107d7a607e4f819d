package responses

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
	"github.com/angelmondragon/societyhub-backend/pkg/pagination"
	"github.com/angelmondragon/societyhub-backend/pkg/types"
)

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"hello": "world"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode success envelope: %v", err)
	}
	if body.Data.(map[string]any)["hello"] != "world" {
		t.Fatalf("unexpected payload %v", body.Data)
	}
}

func TestWriteErrorKeepsDomainMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, pkgerrors.New(pkgerrors.CodeNotApproved, "society is pending approval"))

	if got := w.Code; got != http.StatusForbidden {
		t.Fatalf("expected status 403 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeNotApproved) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
	if body.Error.Message != "society is pending approval" {
		t.Fatalf("unexpected message %q", body.Error.Message)
	}
}

func TestWriteErrorMapsValidationDetails(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "bad input").
		WithDetails(map[string]string{"field": "demo"})
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Error.Details == nil {
		t.Fatalf("expected details in public payload")
	}
}

func TestWriteErrorHidesDependencyMessage(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})
	w := httptest.NewRecorder()
	WriteError(context.Background(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("dial tcp"), "load membership"))

	if got := w.Code; got != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 but got %d", got)
	}
	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Error.Message != "dependency unavailable" {
		t.Fatalf("unexpected message %q", body.Error.Message)
	}
	if !strings.Contains(buf.String(), "request.error") {
		t.Fatalf("expected error log entry, got %s", buf.String())
	}
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeInternal) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
	if body.Error.Details != nil {
		t.Fatalf("details should be omitted for internal errors")
	}
}

func TestWriteListIncludesPageMeta(t *testing.T) {
	w := httptest.NewRecorder()
	WriteList(w, []string{"a", "b"}, pagination.Params{Skip: 4, Limit: 2})

	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode list envelope: %v", err)
	}
	if body.Meta == nil {
		t.Fatalf("expected meta on list response")
	}
	want := types.PageMeta{Skip: 4, Limit: 2, Count: 2, HasMore: true}
	if *body.Meta != want {
		t.Fatalf("unexpected meta %+v", *body.Meta)
	}
}

func TestWriteListRendersNilAsEmptyArray(t *testing.T) {
	w := httptest.NewRecorder()
	WriteList[int](w, nil, pagination.Params{})

	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty array, got %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"limit":50`) {
		t.Fatalf("expected normalized limit, got %s", w.Body.String())
	}
}

func TestWriteErrorEchoesRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	w.Header().Set("X-Request-Id", "req-123")
	WriteError(context.Background(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "society not found"))

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Error.RequestID != "req-123" {
		t.Fatalf("unexpected request id %q", body.Error.RequestID)
	}
}
