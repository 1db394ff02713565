package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/service"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"task not found", service.ErrTaskNotFound, http.StatusNotFound, MsgTaskNotFound},
		{"wrapped task not found", fmt.Errorf("lookup: %w", service.ErrTaskNotFound), http.StatusNotFound, MsgTaskNotFound},
		{"assignee not found", service.ErrAssigneeNotFound, http.StatusNotFound, MsgAssigneeNotFound},
		{"invalid pagination", service.ErrInvalidPagination, http.StatusBadRequest, MsgInvalidPagination},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusBadRequest, MsgInvalidCredentials},
		{"email taken", service.ErrEmailTaken, http.StatusConflict, MsgEmailTaken},
		{"past due date", domain.ErrPastDueDate, http.StatusUnprocessableEntity, MsgPastDueDate},
		{
			"field validation",
			domain.NewValidationError("title", "is required", domain.ErrValidation),
			http.StatusUnprocessableEntity,
			"title is required",
		},
		{"user validation", domain.ErrInvalidEmail, http.StatusUnprocessableEntity, domain.ErrInvalidEmail.Error()},
		{"invalid body", shared.ErrInvalidBody, http.StatusUnprocessableEntity, MsgInvalidBody},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, MsgInvalidToken},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, MsgUnexpected},
		{
			"service error hides cause",
			&service.ServiceError{Service: "task", Operation: "create", Err: errors.New("pq: syntax error")},
			http.StatusInternalServerError,
			MsgUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.msg, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := shared.ValidateRequest(&SignupRequest{
		Email:     "not-an-email",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "long-enough",
	})
	require.Error(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, MapErrorToStatusCode(err))
	assert.Equal(t, "Invalid email: invalid email format", GetSafeErrorMessage(err))

	err = shared.ValidateRequest(&SignupRequest{Email: "ada@example.com", FirstName: "Ada", LastName: "L", Password: "short"})
	require.Error(t, err)
	assert.Equal(t, "Invalid password: too short", GetSafeErrorMessage(err))
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	t.Run("fallback replaces generic message", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/tasks/1", nil)
		r = r.WithContext(shared.WithTraceID(r.Context(), "trace-1"))

		HandleAPIError(w, r, errors.New("db down"), "Failed to get task")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body shared.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "Failed to get task", body.Detail)
		assert.Equal(t, "trace-1", body.TraceID)
	})

	t.Run("fallback ignored for expected errors", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/tasks/1", nil)

		HandleAPIError(w, r, service.ErrTaskNotFound, "Failed to get task")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), MsgTaskNotFound)
	})

	t.Run("authentication errors challenge", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/tasks/", nil)

		HandleAPIError(w, r, auth.ErrInvalidToken, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	})
}
