package store

import (
	"context"

	"github.com/phrazzld/taskmanager-api/internal/domain"
)

// TaskFilter restricts and pages a task listing. All set fields are combined
// with AND. Results are ordered by task ID.
type TaskFilter struct {
	// VisibleTo keeps only tasks owned by or assigned to this user.
	VisibleTo *int64
	Status    *domain.TaskStatus
	Priority  *domain.TaskPriority
	// Search keeps tasks whose title contains this substring (case-sensitive).
	Search string
	Offset int
	Limit  int
}

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Create inserts the task and sets its ID.
	// Returns ErrUnknownUserReference if the owner or assignee does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task. Inside a transaction the row is locked for
	// update where the backend supports it.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// GetView retrieves a task with its owner and assignee names.
	// Returns ErrTaskNotFound if the task does not exist.
	GetView(ctx context.Context, id int64) (*domain.TaskView, error)

	// List returns the task views matching filter.
	List(ctx context.Context, filter TaskFilter) ([]*domain.TaskView, error)

	// Update overwrites the mutable fields of an existing task.
	// Returns ErrTaskNotFound if the task does not exist and
	// ErrUnknownUserReference if the assignee does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error
}

// Stores groups the stores bound to one transaction.
type Stores struct {
	Users UserStore
	Tasks TaskStore
}

// Transactor runs a function against stores that share one transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}
