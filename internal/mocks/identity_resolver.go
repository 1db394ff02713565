package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
)

// MockIdentityResolver implements auth.IdentityResolver for testing.
// Without ResolveFn it maps tokens through Identities and reports
// auth.ErrInvalidToken for unknown ones.
type MockIdentityResolver struct {
	ResolveFn func(ctx context.Context, token string) (domain.Identity, error)

	Identities map[string]domain.Identity

	mu     sync.Mutex
	Tokens []string
}

var _ auth.IdentityResolver = (*MockIdentityResolver)(nil)

// ResolveIdentity implements the auth.IdentityResolver interface
func (m *MockIdentityResolver) ResolveIdentity(ctx context.Context, token string) (domain.Identity, error) {
	m.mu.Lock()
	m.Tokens = append(m.Tokens, token)
	m.mu.Unlock()

	if m.ResolveFn != nil {
		return m.ResolveFn(ctx, token)
	}
	if token == "" {
		return domain.Identity{}, auth.ErrMissingToken
	}
	identity, ok := m.Identities[token]
	if !ok {
		return domain.Identity{}, auth.ErrInvalidToken
	}
	return identity, nil
}
