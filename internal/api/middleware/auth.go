package middleware

import (
	"net/http"
	"strings"

	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
)

// AuthMiddleware provides bearer-token authentication for routes.
type AuthMiddleware struct {
	resolver auth.IdentityResolver
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(resolver auth.IdentityResolver) *AuthMiddleware {
	if resolver == nil {
		panic("resolver cannot be nil")
	}
	return &AuthMiddleware{
		resolver: resolver,
	}
}

// Authenticate resolves the bearer token in the Authorization header and
// adds the caller's identity to the request context.
//
// A missing header or a non-bearer scheme is answered with 401
// "Not authenticated"; any token that cannot be resolved with 401
// "Invalid token". Both carry WWW-Authenticate: Bearer.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated",
				shared.WithHeader("WWW-Authenticate", "Bearer"))
			return
		}

		identity, err := m.resolver.ResolveIdentity(r.Context(), token)
		if err != nil {
			if auth.IsAuthenticationError(err) {
				log.Debug("rejected bearer token", "error", err)
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err,
					shared.WithHeader("WWW-Authenticate", "Bearer"))
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			return
		}

		ctx := shared.WithIdentity(r.Context(), identity)
		ctx = logger.WithContext(ctx, log.With("user_id", identity.ID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an Authorization header value.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// GetIdentity extracts the authenticated identity from the request context.
// Returns the identity and a boolean indicating if it was found.
func GetIdentity(r *http.Request) (domain.Identity, bool) {
	return shared.GetIdentity(r.Context())
}
