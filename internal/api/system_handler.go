package api

import (
	"net/http"

	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/redact"
)

// WelcomeMessage is served at the API root.
const WelcomeMessage = "Welcome to the Task Management System API"

// DebugResponse echoes what the server saw of the request, as forwarded
// by any proxy in front of it.
type DebugResponse struct {
	ForwardedProto string            `json:"X-Forwarded-Proto"`
	Host           string            `json:"Host"`
	Headers        map[string]string `json:"Headers"`
}

// Root handles GET /.
func Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: WelcomeMessage})
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		logger.FromContext(r.Context()).Error("failed to write health check response", "error", err)
	}
}

// Debug handles GET and HEAD /debug. Credential headers are masked.
func Debug(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, DebugResponse{
		ForwardedProto: r.Header.Get("X-Forwarded-Proto"),
		Host:           r.Host,
		Headers:        redact.Headers(r.Header),
	})
}
