package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/platform/logger"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
	// lockRows makes GetByID take a row lock; only meaningful inside a transaction.
	lockRows bool
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

const selectTaskColumns = `
	SELECT id, title, description, status, priority, due_date, owner_id, assignee_id, created_at
	FROM tasks
`

const selectTaskViewColumns = `
	SELECT t.id, t.title, t.description, t.status, t.priority, t.due_date,
		t.owner_id, t.assignee_id, t.created_at,
		o.first_name || ' ' || o.last_name,
		a.first_name || ' ' || a.last_name
	FROM tasks t
	JOIN users o ON o.id = t.owner_id
	LEFT JOIN users a ON a.id = t.assignee_id
`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

type taskColumns struct {
	description sql.NullString
	dueDate     sql.NullTime
	assigneeID  sql.NullInt64
}

func (c *taskColumns) targets(task *domain.Task) []any {
	return []any{
		&task.ID,
		&task.Title,
		&c.description,
		&task.Status,
		&task.Priority,
		&c.dueDate,
		&task.OwnerID,
		&c.assigneeID,
		&task.CreatedAt,
	}
}

func (c *taskColumns) apply(task *domain.Task) {
	if c.description.Valid {
		description := c.description.String
		task.Description = &description
	}
	if c.dueDate.Valid {
		due := c.dueDate.Time.UTC()
		task.DueDate = &due
	}
	if c.assigneeID.Valid {
		assigneeID := c.assigneeID.Int64
		task.AssigneeID = &assigneeID
	}
	task.CreatedAt = task.CreatedAt.UTC()
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var cols taskColumns
	if err := row.Scan(cols.targets(&task)...); err != nil {
		return nil, err
	}
	cols.apply(&task)
	return &task, nil
}

func scanTaskView(row rowScanner) (*domain.TaskView, error) {
	var view domain.TaskView
	var cols taskColumns
	var assigneeName sql.NullString

	dest := append(cols.targets(&view.Task), &view.OwnerName, &assigneeName)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	cols.apply(&view.Task)
	if assigneeName.Valid {
		name := assigneeName.String
		view.AssigneeName = &name
	}
	return &view, nil
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO tasks (title, description, status, priority, due_date, owner_id, assignee_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		task.DueDate,
		task.OwnerID,
		task.AssigneeID,
		task.CreatedAt,
	).Scan(&task.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("task references unknown user",
				slog.Int64("owner_id", task.OwnerID))
			return MapError(err)
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", task.OwnerID))
		return MapError(err)
	}

	log.Debug("task row inserted",
		slog.Int64("task_id", task.ID),
		slog.Int64("owner_id", task.OwnerID))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := selectTaskColumns + ` WHERE id = $1`
	if s.lockRows {
		query += ` FOR UPDATE`
	}

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, MapError(err)
	}
	return task, nil
}

// GetView implements store.TaskStore.GetView
func (s *PostgresTaskStore) GetView(ctx context.Context, id int64) (*domain.TaskView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	view, err := scanTaskView(s.db.QueryRowContext(ctx, selectTaskViewColumns+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task view",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, MapError(err)
	}
	return view, nil
}

// buildListQuery renders filter as a WHERE/ORDER/LIMIT suffix with
// positional arguments.
func buildListQuery(filter store.TaskFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.VisibleTo != nil {
		p := next(*filter.VisibleTo)
		conditions = append(conditions, fmt.Sprintf("(t.owner_id = %s OR t.assignee_id = %s)", p, p))
	}
	if filter.Status != nil {
		conditions = append(conditions, "t.status = "+next(string(*filter.Status)))
	}
	if filter.Priority != nil {
		conditions = append(conditions, "t.priority = "+next(string(*filter.Priority)))
	}
	if filter.Search != "" {
		conditions = append(conditions, "strpos(t.title, "+next(filter.Search)+") > 0")
	}

	var b strings.Builder
	if len(conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}
	b.WriteString(" ORDER BY t.id")
	if filter.Limit > 0 {
		b.WriteString(" LIMIT " + next(filter.Limit))
	}
	if filter.Offset > 0 {
		b.WriteString(" OFFSET " + next(filter.Offset))
	}
	return b.String(), args
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.TaskView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	suffix, args := buildListQuery(filter)
	rows, err := s.db.QueryContext(ctx, selectTaskViewColumns+suffix, args...)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	views := []*domain.TaskView{}
	for rows.Next() {
		view, err := scanTaskView(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed tasks",
		slog.Int("count", len(views)),
		slog.Int("offset", filter.Offset),
		slog.Int("limit", filter.Limit))
	return views, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4, due_date = $5, assignee_id = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		task.DueDate,
		task.AssigneeID,
		task.ID,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("task update references unknown user",
				slog.Int64("task_id", task.ID))
			return MapError(err)
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found for update", slog.Int64("task_id", task.ID))
		return err
	}

	log.Debug("task row updated", slog.Int64("task_id", task.ID))
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found for delete", slog.Int64("task_id", id))
		return err
	}

	log.Debug("task row deleted", slog.Int64("task_id", id))
	return nil
}
