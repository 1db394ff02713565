package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/domain/access"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// DeletedTask identifies a task that was removed.
type DeletedTask struct {
	ID    int64
	Title string
}

// TaskService provides the task operations available to an authenticated caller.
type TaskService interface {
	// CreateTask validates draft and stores a task owned by identity.
	// Returns a domain validation error, domain.ErrPastDueDate or ErrAssigneeNotFound.
	CreateTask(ctx context.Context, identity domain.Identity, draft domain.TaskDraft) (*domain.TaskView, error)

	// GetTask returns a task the caller owns or is assigned.
	// Returns ErrTaskNotFound otherwise.
	GetTask(ctx context.Context, identity domain.Identity, id int64) (*domain.TaskView, error)

	// ListTasks returns the tasks matching query.
	// Returns ErrInvalidPagination for a page or limit below 1.
	ListTasks(ctx context.Context, identity domain.Identity, query TaskQuery) ([]*domain.TaskView, error)

	// UpdateTask applies patch to a task the caller owns.
	// Returns ErrTaskNotFound, ErrAssigneeNotFound or a domain validation error.
	UpdateTask(ctx context.Context, identity domain.Identity, id int64, patch domain.TaskPatch) (*domain.TaskView, error)

	// DeleteTask removes a task the caller owns.
	// Returns ErrTaskNotFound otherwise.
	DeleteTask(ctx context.Context, identity domain.Identity, id int64) (*DeletedTask, error)
}

// TaskServiceOption configures a TaskServiceImpl.
type TaskServiceOption func(*TaskServiceImpl)

// WithClock sets the time source used for creation timestamps and the
// due date check.
func WithClock(now func() time.Time) TaskServiceOption {
	return func(s *TaskServiceImpl) {
		s.now = now
	}
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	stores     store.Stores
	transactor store.Transactor
	now        func() time.Time
	logger     *slog.Logger
}

var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService. stores serves single reads;
// transactor runs every operation that combines a read and a write.
func NewTaskService(
	stores store.Stores,
	transactor store.Transactor,
	logger *slog.Logger,
	opts ...TaskServiceOption,
) *TaskServiceImpl {
	if stores.Users == nil || stores.Tasks == nil {
		panic("stores cannot be nil")
	}
	if transactor == nil {
		panic("transactor cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &TaskServiceImpl{
		stores:     stores,
		transactor: transactor,
		now:        time.Now,
		logger:     logger.With("component", "task_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTask validates the draft, checks the assignee and inserts the task
// in one transaction.
func (s *TaskServiceImpl) CreateTask(
	ctx context.Context,
	identity domain.Identity,
	draft domain.TaskDraft,
) (*domain.TaskView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(identity.ID, draft, s.now())
	if err != nil {
		log.Debug("task rejected by validation", "error", err)
		return nil, err
	}

	var view *domain.TaskView
	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx store.Stores) error {
		if err := checkAssignee(ctx, tx.Users, task.AssigneeID); err != nil {
			return err
		}
		if err := tx.Tasks.Create(ctx, task); err != nil {
			return mapAssigneeError(err)
		}
		var err error
		view, err = tx.Tasks.GetView(ctx, task.ID)
		return err
	})
	if err != nil {
		return nil, s.fail(log, "create_task", err)
	}

	log.Info("task created", "task_id", view.ID)
	return view, nil
}

// GetTask loads the task and runs the read policy on it.
func (s *TaskServiceImpl) GetTask(ctx context.Context, identity domain.Identity, id int64) (*domain.TaskView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	view, err := s.stores.Tasks.GetView(ctx, id)
	if err != nil && !errors.Is(err, store.ErrTaskNotFound) {
		return nil, s.fail(log, "get_task", err)
	}

	var task *domain.Task
	if view != nil {
		task = &view.Task
	}
	if err := authorize(identity, task, access.OpRead); err != nil {
		log.Debug("task read denied", "task_id", id)
		return nil, err
	}
	return view, nil
}

// ListTasks builds the filter for query and lists the matching tasks.
func (s *TaskServiceImpl) ListTasks(
	ctx context.Context,
	identity domain.Identity,
	query TaskQuery,
) ([]*domain.TaskView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	filter, err := BuildTaskQuery(identity, query)
	if err != nil {
		return nil, err
	}

	views, err := s.stores.Tasks.List(ctx, filter)
	if err != nil {
		return nil, s.fail(log, "list_tasks", err)
	}
	return views, nil
}

// UpdateTask validates the patch, then loads, authorizes and writes the task
// in one transaction.
func (s *TaskServiceImpl) UpdateTask(
	ctx context.Context,
	identity domain.Identity,
	id int64,
	patch domain.TaskPatch,
) (*domain.TaskView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		log.Debug("task update rejected by validation", "error", err)
		return nil, err
	}

	var view *domain.TaskView
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx store.Stores) error {
		task, err := loadTask(ctx, tx.Tasks, id)
		if err != nil {
			return err
		}
		if err := authorize(identity, task, access.OpUpdate); err != nil {
			return err
		}

		if patch.AssigneeID.Set {
			if err := checkAssignee(ctx, tx.Users, patch.AssigneeID.Value); err != nil {
				return err
			}
		}
		if patch.IsEmpty() {
			view, err = tx.Tasks.GetView(ctx, id)
			return err
		}

		patch.ApplyTo(task)
		if err := tx.Tasks.Update(ctx, task); err != nil {
			return mapAssigneeError(err)
		}
		view, err = tx.Tasks.GetView(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.fail(log, "update_task", err)
	}

	log.Info("task updated", "task_id", id)
	return view, nil
}

// DeleteTask loads, authorizes and deletes the task in one transaction.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, identity domain.Identity, id int64) (*DeletedTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deleted *DeletedTask
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx store.Stores) error {
		task, err := loadTask(ctx, tx.Tasks, id)
		if err != nil {
			return err
		}
		if err := authorize(identity, task, access.OpDelete); err != nil {
			return err
		}
		if err := tx.Tasks.Delete(ctx, id); err != nil {
			return err
		}
		deleted = &DeletedTask{ID: task.ID, Title: task.Title}
		return nil
	})
	if err != nil {
		return nil, s.fail(log, "delete_task", err)
	}

	log.Info("task deleted", "task_id", id)
	return deleted, nil
}

// fail passes expected errors through and wraps everything else.
func (s *TaskServiceImpl) fail(log *slog.Logger, operation string, err error) error {
	switch {
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, ErrAssigneeNotFound):
		log.Debug("task operation rejected", "operation", operation, "error", err)
		return err
	case errors.Is(err, store.ErrTaskNotFound):
		return ErrTaskNotFound
	}
	log.Error("task operation failed", "operation", operation, "error", err)
	return newTaskServiceError(operation, err)
}

// loadTask returns the task or nil when it does not exist.
func loadTask(ctx context.Context, tasks store.TaskStore, id int64) (*domain.Task, error) {
	task, err := tasks.GetByID(ctx, id)
	if errors.Is(err, store.ErrTaskNotFound) {
		return nil, nil
	}
	return task, err
}

// authorize runs the access policy, hiding forbidden tasks as missing.
func authorize(identity domain.Identity, task *domain.Task, op access.Operation) error {
	if !access.Conceal(access.Decide(identity, task, op)).Allowed() {
		return ErrTaskNotFound
	}
	return nil
}

func checkAssignee(ctx context.Context, users store.UserStore, assigneeID *int64) error {
	if assigneeID == nil {
		return nil
	}
	exists, err := users.Exists(ctx, *assigneeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrAssigneeNotFound
	}
	return nil
}

// mapAssigneeError turns a dangling user reference into ErrAssigneeNotFound.
// The owner always exists, so the assignee is the only reference that can dangle.
func mapAssigneeError(err error) error {
	if errors.Is(err, store.ErrUnknownUserReference) {
		return ErrAssigneeNotFound
	}
	return err
}
