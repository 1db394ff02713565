package sqlite

import (
	"context"
	"log/slog"

	"github.com/phrazzld/taskmanager-api/internal/store"
	"gorm.io/gorm"
)

// Transactor implements store.Transactor with gorm transactions.
type Transactor struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewTransactor creates a Transactor for db.
func NewTransactor(db *gorm.DB, logger *slog.Logger) *Transactor {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transactor{db: db, logger: logger}
}

var _ store.Transactor = (*Transactor)(nil)

// NewStores returns stores bound to db.
func NewStores(db *gorm.DB, logger *slog.Logger) store.Stores {
	return store.Stores{
		Users: NewUserStore(db, logger),
		Tasks: NewTaskStore(db, logger),
	}
}

// WithinTx implements store.Transactor.WithinTx
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, stores store.Stores) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewStores(tx, t.logger))
	})
}
