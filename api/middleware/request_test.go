package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/societyhub-backend/pkg/config"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
	"github.com/angelmondragon/societyhub-backend/pkg/types"
)

func TestRequestIDPropagatesValidHeader(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})
	handler := RequestID(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logg.Info(r.Context(), "inside")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "edge-7f3a.1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "edge-7f3a.1", rec.Header().Get(requestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"edge-7f3a.1"`)
}

func TestRequestIDReplacesUnsafeHeader(t *testing.T) {
	for _, raw := range []string{"", "has space", "line\nbreak", strings.Repeat("a", maxRequestIDLen+1)} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if raw != "" {
			req.Header[requestIDHeader] = []string{raw}
		}
		rec := httptest.NewRecorder()
		RequestID(nil)(okHandler(nil)).ServeHTTP(rec, req)

		_, err := uuid.Parse(rec.Header().Get(requestIDHeader))
		assert.NoError(t, err, "header %q should be replaced by a uuid", raw)
	}
}

func TestRecovererWritesInternalError(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})
	handler := Recoverer(logg)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/issues", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body types.ErrorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.Equal(t, 1, strings.Count(buf.String(), "panic.recovered"))
	assert.Contains(t, buf.String(), `"path":"/api/v1/issues"`)
}

func TestRecovererReraisesAbort(t *testing.T) {
	handler := Recoverer(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestAllowedOriginsDropLocalhostInProduction(t *testing.T) {
	dev := allowedOrigins(config.AppConfig{Env: "dev", CORSOrigins: []string{"https://admin.example.com", "http://localhost:3000"}})
	if len(dev) != 3 {
		t.Fatalf("expected local origins plus one extra, got %v", dev)
	}
	prod := allowedOrigins(config.AppConfig{Env: "prod", CORSOrigins: []string{"https://admin.example.com", ""}})
	if len(prod) != 1 || prod[0] != "https://admin.example.com" {
		t.Fatalf("unexpected production origins %v", prod)
	}
}

func TestCORSPreflightExposesHeaders(t *testing.T) {
	handler := CORS(config.AppConfig{Env: "dev"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/societies", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("unexpected allow origin %q", got)
	}
	if got := rec.Header().Get("Access-Control-Expose-Headers"); !strings.Contains(got, "Retry-After") {
		t.Fatalf("expected Retry-After to be exposed, got %q", got)
	}
}
