package testdb_test

import (
	"context"
	"testing"

	"github.com/phrazzld/taskmanager-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGetTestDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TASKS_TEST_DB_URL", "")
	assert.True(t, testdb.ShouldSkipDatabaseTest())
	assert.Equal(t, "", testdb.GetTestDatabaseURL())

	t.Setenv("TASKS_TEST_DB_URL", "postgres://fallback")
	assert.Equal(t, "postgres://fallback", testdb.GetTestDatabaseURL())

	t.Setenv("DATABASE_URL", "postgres://primary")
	assert.Equal(t, "postgres://primary", testdb.GetTestDatabaseURL())
	assert.True(t, testdb.IsIntegrationTestEnvironment())
}

func TestOpenSQLiteDatabasesAreIsolated(t *testing.T) {
	first, _ := testdb.NewSQLiteStores(t)
	second, _ := testdb.NewSQLiteStores(t)

	user := testdb.MustCreateUser(t, first.Users, "ada@example.com", "Ada", "Lovelace")
	assert.NotZero(t, user.ID)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(testdb.TestPassword)))

	users, err := second.Users.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}
