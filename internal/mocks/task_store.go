package mocks

import (
	"context"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// Methods without a function field return Err and zero values.
type MockTaskStore struct {
	CreateFn  func(ctx context.Context, task *domain.Task) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Task, error)
	GetViewFn func(ctx context.Context, id int64) (*domain.TaskView, error)
	ListFn    func(ctx context.Context, filter store.TaskFilter) ([]*domain.TaskView, error)
	UpdateFn  func(ctx context.Context, task *domain.Task) error
	DeleteFn  func(ctx context.Context, id int64) error

	Err error
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return m.Err
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, store.ErrTaskNotFound
}

// GetView implements the TaskStore interface
func (m *MockTaskStore) GetView(ctx context.Context, id int64) (*domain.TaskView, error) {
	if m.GetViewFn != nil {
		return m.GetViewFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, store.ErrTaskNotFound
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.TaskView, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return nil, m.Err
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return m.Err
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

// MockTransactor implements store.Transactor by running fn directly
// against Stores, without a real transaction.
type MockTransactor struct {
	Stores store.Stores

	// BeginErr, when set, is returned without running fn.
	BeginErr error

	Calls int
}

var _ store.Transactor = (*MockTransactor)(nil)

// WithinTx implements the Transactor interface
func (m *MockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, stores store.Stores) error) error {
	m.Calls++
	if m.BeginErr != nil {
		return m.BeginErr
	}
	return fn(ctx, m.Stores)
}
