package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	var seen string
	handler := TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.GetTraceID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rr.Header().Get(TraceIDHeader))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestTrustedHosts(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name    string
		allowed []string
		host    string
		want    int
	}{
		{"empty list allows all", nil, "anything.example", http.StatusOK},
		{"star allows all", []string{"*"}, "anything.example", http.StatusOK},
		{"exact match", []string{"api.example.com"}, "api.example.com", http.StatusOK},
		{"exact match with port", []string{"api.example.com"}, "api.example.com:8080", http.StatusOK},
		{"case-insensitive", []string{"API.example.com"}, "api.EXAMPLE.com", http.StatusOK},
		{"wildcard subdomain", []string{"*.example.com"}, "tasks.example.com", http.StatusOK},
		{"wildcard excludes apex", []string{"*.example.com"}, "example.com", http.StatusBadRequest},
		{"wildcard excludes lookalike", []string{"*.example.com"}, "evilexample.com", http.StatusBadRequest},
		{"unknown host", []string{"api.example.com"}, "evil.test", http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tc.host
			rr := httptest.NewRecorder()
			TrustedHosts(tc.allowed)(ok).ServeHTTP(rr, req)
			assert.Equal(t, tc.want, rr.Code)
			if tc.want == http.StatusBadRequest {
				assert.Contains(t, rr.Body.String(), "Invalid host header")
			}
		})
	}
}

func TestForwardedHTTPSRedirects(t *testing.T) {
	t.Parallel()

	redirect := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://api.example.com/tasks/", http.StatusTemporaryRedirect)
	})

	t.Run("rewrites behind https proxy", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		rr := httptest.NewRecorder()
		ForwardedHTTPSRedirects(redirect).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTemporaryRedirect, rr.Code)
		assert.Equal(t, "https://api.example.com/tasks/", rr.Header().Get("Location"))
	})

	t.Run("leaves plain requests alone", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		rr := httptest.NewRecorder()
		ForwardedHTTPSRedirects(redirect).ServeHTTP(rr, req)

		assert.Equal(t, "http://api.example.com/tasks/", rr.Header().Get("Location"))
	})

	t.Run("body without explicit header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		rr := httptest.NewRecorder()
		ForwardedHTTPSRedirects(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Location", "http://x/")
			_, _ = w.Write([]byte("ok"))
		})).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "https://x/", rr.Header().Get("Location"))
	})
}
