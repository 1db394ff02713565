package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// IdentityResolver turns a bearer token into the identity of the caller.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (domain.Identity, error)
}

type identityResolver struct {
	tokens JWTService
	users  store.UserStore
	logger *slog.Logger
}

// NewIdentityResolver creates an IdentityResolver that validates tokens with
// tokens and looks the subject email up in users.
func NewIdentityResolver(tokens JWTService, users store.UserStore, logger *slog.Logger) IdentityResolver {
	if tokens == nil {
		panic("tokens cannot be nil")
	}
	if users == nil {
		panic("users cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &identityResolver{
		tokens: tokens,
		users:  users,
		logger: logger.With(slog.String("component", "identity_resolver")),
	}
}

// ResolveIdentity validates token and returns the matching user's identity.
// Errors are ErrMissingToken, ErrInvalidToken (or one wrapping it),
// ErrExpiredToken and ErrTokenNotYetValid; store failures are wrapped.
func (r *identityResolver) ResolveIdentity(ctx context.Context, token string) (domain.Identity, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	if token == "" {
		return domain.Identity{}, ErrMissingToken
	}

	claims, err := r.tokens.ValidateToken(ctx, token)
	if err != nil {
		return domain.Identity{}, err
	}
	if claims.Subject == "" {
		log.Debug("token has no subject claim")
		return domain.Identity{}, ErrMissingSubject
	}

	user, err := r.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("token subject does not match a user")
			return domain.Identity{}, ErrUnknownSubject
		}
		return domain.Identity{}, fmt.Errorf("failed to resolve identity: %w", err)
	}

	return domain.Identity{ID: user.ID, Email: user.Email}, nil
}
