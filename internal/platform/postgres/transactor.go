package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/taskmanager-api/internal/store"
)

// Transactor implements store.Transactor on a PostgreSQL connection pool.
// Task rows read through GetByID inside WithinTx are locked FOR UPDATE until
// the transaction ends.
type Transactor struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTransactor creates a Transactor for db.
func NewTransactor(db *sql.DB, logger *slog.Logger) *Transactor {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transactor{db: db, logger: logger}
}

var _ store.Transactor = (*Transactor)(nil)

// NewStores returns stores bound to db or tx without row locking.
func NewStores(db store.DBTX, logger *slog.Logger) store.Stores {
	return store.Stores{
		Users: NewPostgresUserStore(db, logger),
		Tasks: NewPostgresTaskStore(db, logger),
	}
}

// WithinTx implements store.Transactor.WithinTx
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, stores store.Stores) error) error {
	return store.RunInTransaction(ctx, t.db, func(ctx context.Context, tx *sql.Tx) error {
		tasks := NewPostgresTaskStore(tx, t.logger)
		tasks.lockRows = true

		return fn(ctx, store.Stores{
			Users: NewPostgresUserStore(tx, t.logger),
			Tasks: tasks,
		})
	})
}
