package sqlite

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/store"
	"gorm.io/gorm"
)

// TaskStore implements store.TaskStore on SQLite.
// SQLite serializes writers, so GetByID needs no explicit row lock.
type TaskStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewTaskStore creates a TaskStore. If logger is nil, a default logger will be used.
func NewTaskStore(db *gorm.DB, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

const taskViewSelect = `t.id, t.title, t.description, t.status, t.priority, t.due_date,
	t.owner_id, t.assignee_id, t.created_at,
	o.first_name || ' ' || o.last_name AS owner_name,
	a.first_name || ' ' || a.last_name AS assignee_name`

func (s *TaskStore) views(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("tasks AS t").
		Select(taskViewSelect).
		Joins("JOIN users o ON o.id = t.owner_id").
		Joins("LEFT JOIN users a ON a.id = t.assignee_id")
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	record := newTaskRecord(task)
	record.ID = 0
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", task.OwnerID))
		return mapError(err)
	}

	task.ID = record.ID
	log.Debug("task row inserted",
		slog.Int64("task_id", task.ID),
		slog.Int64("owner_id", task.OwnerID))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var record taskRecord
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, mapError(err)
	}
	return record.toDomain(), nil
}

// GetView implements store.TaskStore.GetView
func (s *TaskStore) GetView(ctx context.Context, id int64) (*domain.TaskView, error) {
	var rows []taskViewRow
	if err := s.views(ctx).Where("t.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task view",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, mapError(err)
	}
	if len(rows) == 0 {
		return nil, store.ErrTaskNotFound
	}
	return rows[0].toDomain(), nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.TaskView, error) {
	q := s.views(ctx)
	if filter.VisibleTo != nil {
		q = q.Where("(t.owner_id = ? OR t.assignee_id = ?)", *filter.VisibleTo, *filter.VisibleTo)
	}
	if filter.Status != nil {
		q = q.Where("t.status = ?", string(*filter.Status))
	}
	if filter.Priority != nil {
		q = q.Where("t.priority = ?", string(*filter.Priority))
	}
	if filter.Search != "" {
		// instr is case-sensitive, unlike LIKE.
		q = q.Where("instr(t.title, ?) > 0", filter.Search)
	}
	q = q.Order("t.id")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var rows []taskViewRow
	if err := q.Scan(&rows).Error; err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	views := make([]*domain.TaskView, 0, len(rows))
	for i := range rows {
		views = append(views, rows[i].toDomain())
	}
	return views, nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result := s.db.WithContext(ctx).Model(&taskRecord{}).Where("id = ?", task.ID).Updates(map[string]any{
		"title":       task.Title,
		"description": task.Description,
		"status":      string(task.Status),
		"priority":    string(task.Priority),
		"due_date":    task.DueDate,
		"assignee_id": task.AssigneeID,
	})
	if err := result.Error; err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return mapError(err)
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	log.Debug("task row updated", slog.Int64("task_id", task.ID))
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result := s.db.WithContext(ctx).Delete(&taskRecord{}, "id = ?", id)
	if err := result.Error; err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return mapError(err)
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	log.Debug("task row deleted", slog.Int64("task_id", id))
	return nil
}
