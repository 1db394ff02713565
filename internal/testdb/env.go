package testdb

import "os"

// Environment variables checked, in order, for a PostgreSQL test database.
var databaseURLEnvVars = []string{"DATABASE_URL", "TASKS_TEST_DB_URL"}

// GetTestDatabaseURL returns the first non-empty PostgreSQL test URL.
func GetTestDatabaseURL() string {
	for _, name := range databaseURLEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// IsIntegrationTestEnvironment reports whether a PostgreSQL test database is configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// ShouldSkipDatabaseTest reports whether PostgreSQL integration tests should be skipped.
func ShouldSkipDatabaseTest() bool {
	return !IsIntegrationTestEnvironment()
}
