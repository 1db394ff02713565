package testdb

import (
	"context"
	"testing"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/store"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext password of users created by MustCreateUser.
const TestPassword = "password123"

// MustCreateUser stores a user with TestPassword hashed at minimum cost.
func MustCreateUser(t *testing.T, users store.UserStore, email, firstName, lastName string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		Email:          email,
		FirstName:      firstName,
		LastName:       lastName,
		HashedPassword: string(hash),
	}
	require.NoError(t, users.Create(context.Background(), user), "Failed to create test user")
	return user
}
