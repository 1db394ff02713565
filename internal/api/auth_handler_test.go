package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/mocks"
	"github.com/phrazzld/taskmanager-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Signup(t *testing.T) {
	t.Parallel()

	t.Run("creates user", func(t *testing.T) {
		users := &mocks.MockUserService{User: &domain.User{ID: 5, Email: "ada@example.com"}}
		h := NewAuthHandler(users, nil)

		body := `{"email":"ada@example.com","first_name":"Ada","last_name":"Lovelace","password":"analytical"}`
		w := httptest.NewRecorder()
		h.Signup(w, httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, w.Code)
		var resp UserResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, UserResponse{ID: 5, Email: "ada@example.com"}, resp)
		assert.Equal(t, service.SignupInput{
			Email:     "ada@example.com",
			FirstName: "Ada",
			LastName:  "Lovelace",
			Password:  "analytical",
		}, users.LastSignup)
		assert.NotContains(t, w.Body.String(), "password")
	})

	tests := []struct {
		name   string
		body   string
		err    error
		status int
		detail string
	}{
		{
			name:   "malformed json",
			body:   `{"email":`,
			status: http.StatusUnprocessableEntity,
			detail: MsgInvalidBody,
		},
		{
			name:   "missing first name",
			body:   `{"email":"ada@example.com","last_name":"L","password":"analytical"}`,
			status: http.StatusUnprocessableEntity,
			detail: "Invalid first_name: required field",
		},
		{
			name:   "duplicate email",
			body:   `{"email":"ada@example.com","first_name":"Ada","last_name":"L","password":"analytical"}`,
			err:    service.ErrEmailTaken,
			status: http.StatusConflict,
			detail: MsgEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mocks.MockUserService{Err: tt.err}, nil)

			w := httptest.NewRecorder()
			h.Signup(w, httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, w.Code)
			var resp shared.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.detail, resp.Detail)
		})
	}
}

func loginRequest(form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	t.Run("returns bearer token", func(t *testing.T) {
		users := &mocks.MockUserService{LoginResult: &service.LoginResult{
			AccessToken: "token-123",
			TokenType:   service.TokenTypeBearer,
			User:        &domain.User{ID: 1, FirstName: "Ada", LastName: "Lovelace"},
		}}
		h := NewAuthHandler(users, nil)

		w := httptest.NewRecorder()
		h.Login(w, loginRequest(url.Values{"username": {"ada@example.com"}, "password": {"analytical"}}))

		require.Equal(t, http.StatusOK, w.Code)
		var resp LoginResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "token-123", resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, LoginUser{FirstName: "Ada", LastName: "Lovelace"}, resp.User)
		assert.Equal(t, "ada@example.com", users.LastLoginEmail)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		h := NewAuthHandler(&mocks.MockUserService{Err: service.ErrInvalidCredentials}, nil)

		w := httptest.NewRecorder()
		h.Login(w, loginRequest(url.Values{"username": {"ada@example.com"}, "password": {"wrong"}}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), MsgInvalidCredentials)
	})

	t.Run("missing password", func(t *testing.T) {
		users := &mocks.MockUserService{}
		h := NewAuthHandler(users, nil)

		w := httptest.NewRecorder()
		h.Login(w, loginRequest(url.Values{"username": {"ada@example.com"}}))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Empty(t, users.LastLoginEmail)
	})

	t.Run("json body is not accepted", func(t *testing.T) {
		h := NewAuthHandler(&mocks.MockUserService{}, nil)

		r := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"ada@example.com","password":"analytical"}`))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.Login(w, r)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAuthHandler_ListUsers(t *testing.T) {
	t.Parallel()

	users := &mocks.MockUserService{Users: []*domain.User{
		{ID: 1, Email: "a@example.com", HashedPassword: "secret-hash"},
		{ID: 2, Email: "b@example.com"},
	}}
	h := NewAuthHandler(users, nil)

	w := httptest.NewRecorder()
	h.ListUsers(w, httptest.NewRequest(http.MethodGet, "/auth/users", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret-hash")
	var resp []UserResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, []UserResponse{{ID: 1, Email: "a@example.com"}, {ID: 2, Email: "b@example.com"}}, resp)
}

func TestAuthHandler_EmptyUserList(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&mocks.MockUserService{}, nil)
	w := httptest.NewRecorder()
	h.ListUsers(w, httptest.NewRequest(http.MethodGet, "/auth/users", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestNewAuthHandler_PanicsWithoutService(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewAuthHandler(nil, nil) })
}
