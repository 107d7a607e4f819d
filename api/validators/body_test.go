package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
)

type sampleBody struct {
	Name  string  `json:"name" validate:"required,min=2,max=10"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

func jsonRequest(body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(http.MethodPost, "/", nil)
	}
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
		field   string
	}{
		{name: "valid", body: `{"name":"Green"}`},
		{name: "empty", body: "", wantMsg: "request body is required"},
		{name: "unknown field", body: `{"name":"Green","role":"admin"}`, wantMsg: "invalid request body"},
		{name: "trailing object", body: `{"name":"Green"}{"name":"Blue"}`, wantMsg: "request body must contain a single JSON object"},
		{name: "too short", body: `{"name":"G"}`, wantMsg: "validation failed", field: "name"},
		{name: "bad email", body: `{"name":"Green","email":"nope"}`, wantMsg: "validation failed", field: "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dest sampleBody
			err := DecodeJSONBody(jsonRequest(tt.body), &dest)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, "Green", dest.Name)
				return
			}
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
			assert.Equal(t, tt.wantMsg, typed.Message())
			if tt.field != "" {
				details, ok := typed.Details().(map[string]string)
				require.True(t, ok)
				assert.Contains(t, details, tt.field)
			}
		})
	}
}

func TestDecodeJSONBodyRejectsOversizedBody(t *testing.T) {
	body := `{"name":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	var dest sampleBody
	err := DecodeJSONBody(jsonRequest(body), &dest)
	require.Error(t, err)
	assert.Contains(t, pkgerrors.As(err).Message(), "must not exceed")
}

func TestDecodeOptionalJSONBody(t *testing.T) {
	var dest sampleBody
	require.NoError(t, DecodeOptionalJSONBody(jsonRequest(""), &dest))
	assert.Empty(t, dest.Name)

	require.NoError(t, DecodeOptionalJSONBody(jsonRequest(`{"name":"Green"}`), &dest))
	assert.Equal(t, "Green", dest.Name)

	err := DecodeOptionalJSONBody(jsonRequest(`{"name":"G"}`), &dest)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hel\x00lo\n ", 0))
	assert.Equal(t, "abc", SanitizeString("abcdef", 3))
	// "é" is two bytes; a cap inside it drops the whole rune
	assert.Equal(t, "caf", SanitizeString("café", 4))
	assert.Equal(t, "café", SanitizeString("café", 5))
}
