package testdb

import (
	"fmt"
	"regexp"
	"sync/atomic"
	"testing"

	"github.com/phrazzld/taskmanager-api/internal/platform/sqlite"
	"github.com/phrazzld/taskmanager-api/internal/store"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	sqliteSeq     atomic.Int64
	unsafeNameRun = regexp.MustCompile(`[^A-Za-z0-9_]+`)
)

// OpenSQLite returns a migrated, private in-memory SQLite database that is
// closed when the test completes.
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	name := unsafeNameRun.ReplaceAllString(t.Name(), "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=1", name, sqliteSeq.Add(1))

	db, err := sqlite.Open(dsn)
	require.NoError(t, err, "Failed to open sqlite database")
	require.NoError(t, sqlite.Migrate(db), "Failed to migrate sqlite database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewSQLiteStores returns stores and a transactor over a fresh in-memory database.
func NewSQLiteStores(t *testing.T) (store.Stores, store.Transactor) {
	t.Helper()

	db := OpenSQLite(t)
	return sqlite.NewStores(db, nil), sqlite.NewTransactor(db, nil)
}
