// Package testdb provides database utilities for tests.
//
// Two backends are supported:
//
//   - SQLite in memory (OpenSQLite, NewSQLiteStores). Always available; every
//     call gets its own private database with the schema migrated.
//   - PostgreSQL (GetTestDBWithT, WithTx). Used only when DATABASE_URL or
//     TASKS_TEST_DB_URL is set. The embedded goose migrations are applied once
//     and each test runs inside a transaction that is rolled back when it
//     completes, so tests can run in parallel without interfering with each
//     other.
//
// Basic usage:
//
//	func TestMyFeature(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t) // skips when no database is configured
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        stores := postgres.NewStores(tx, nil)
//	        // ...
//	    })
//	}
package testdb
