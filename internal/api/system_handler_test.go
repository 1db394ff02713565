package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskmanager-api/internal/redact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	Root(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Welcome to the Task Management System API"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestDebug(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "http://api.example.com/debug", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	r.Header.Set("Authorization", "Bearer secret-token")
	w := httptest.NewRecorder()

	Debug(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp DebugResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "https", resp.ForwardedProto)
	assert.Equal(t, "api.example.com", resp.Host)
	assert.Equal(t, redact.RedactionPlaceholder, resp.Headers["Authorization"])
	assert.NotContains(t, w.Body.String(), "secret-token")
}
