package domain

import (
	"time"
	"unicode/utf8"
)

// TaskStatus is the progress state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusToDo       TaskStatus = "To-Do"
	TaskStatusInProgress TaskStatus = "In-Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// Valid reports whether s is one of the enumerated statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// TaskPriority is the urgency of a task.
type TaskPriority string

// Possible task priority values
const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// Valid reports whether p is one of the enumerated priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Field limits for tasks, counted in characters.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 1000
)

// Task is a unit of work owned by the user who created it and optionally
// assigned to another user.
type Task struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date"`
	OwnerID     int64        `json:"owner_id"`
	AssigneeID  *int64       `json:"assignee_id"`
	CreatedAt   time.Time    `json:"created_at"`
}

// IsOwnedBy reports whether userID created the task.
func (t *Task) IsOwnedBy(userID int64) bool {
	return t.OwnerID == userID
}

// IsAssignedTo reports whether userID is the task's assignee.
func (t *Task) IsAssignedTo(userID int64) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}

// TaskView is the read model returned to clients: a task plus the display
// names of its owner and assignee.
type TaskView struct {
	Task
	OwnerName    string  `json:"owner_name"`
	AssigneeName *string `json:"assignee_name"`
}

// TaskDraft carries the fields supplied when creating a task.
// Zero status and priority fall back to the defaults.
type TaskDraft struct {
	Title       string
	Description *string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	AssigneeID  *int64
}

// NewTask validates a draft and builds the task owned by ownerID, created at now.
// The due date, if any, is normalized to UTC and must not precede now.
func NewTask(ownerID int64, draft TaskDraft, now time.Time) (*Task, error) {
	if ownerID <= 0 {
		return nil, NewValidationError("owner_id", "is required", ErrInvalidID)
	}

	status := draft.Status
	if status == "" {
		status = TaskStatusToDo
	}
	priority := draft.Priority
	if priority == "" {
		priority = TaskPriorityMedium
	}

	if err := validateTitle(draft.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(draft.Description); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, NewValidationError("status", "must be one of To-Do, In-Progress, Completed", ErrInvalidTaskStatus)
	}
	if !priority.Valid() {
		return nil, NewValidationError("priority", "must be one of Low, Medium, High", ErrInvalidTaskPriority)
	}

	now = now.UTC()
	dueDate := normalizeDueDate(draft.DueDate)
	if dueDate != nil && dueDate.Before(now) {
		return nil, ErrPastDueDate
	}

	return &Task{
		Title:       draft.Title,
		Description: draft.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		OwnerID:     ownerID,
		AssigneeID:  draft.AssigneeID,
		CreatedAt:   now,
	}, nil
}

// Optional is a value that may or may not have been supplied.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a supplied Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// TaskPatch is a partial update. Only fields with Set apply; a set pointer
// field holding nil clears the stored value.
type TaskPatch struct {
	Title       Optional[string]
	Description Optional[*string]
	Status      Optional[TaskStatus]
	Priority    Optional[TaskPriority]
	DueDate     Optional[*time.Time]
	AssigneeID  Optional[*int64]
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Status.Set &&
		!p.Priority.Set && !p.DueDate.Set && !p.AssigneeID.Set
}

// Validate checks the supplied fields with the same shape rules as creation.
// Past due dates are accepted on update.
func (p TaskPatch) Validate() error {
	if p.Title.Set {
		if err := validateTitle(p.Title.Value); err != nil {
			return err
		}
	}
	if p.Description.Set {
		if err := validateDescription(p.Description.Value); err != nil {
			return err
		}
	}
	if p.Status.Set && !p.Status.Value.Valid() {
		return NewValidationError("status", "must be one of To-Do, In-Progress, Completed", ErrInvalidTaskStatus)
	}
	if p.Priority.Set && !p.Priority.Value.Valid() {
		return NewValidationError("priority", "must be one of Low, Medium, High", ErrInvalidTaskPriority)
	}
	return nil
}

// ApplyTo copies the supplied fields onto t. Owner and creation time are
// never touched.
func (p TaskPatch) ApplyTo(t *Task) {
	if p.Title.Set {
		t.Title = p.Title.Value
	}
	if p.Description.Set {
		t.Description = p.Description.Value
	}
	if p.Status.Set {
		t.Status = p.Status.Value
	}
	if p.Priority.Set {
		t.Priority = p.Priority.Value
	}
	if p.DueDate.Set {
		t.DueDate = normalizeDueDate(p.DueDate.Value)
	}
	if p.AssigneeID.Set {
		t.AssigneeID = p.AssigneeID.Value
	}
}

func validateTitle(title string) error {
	if title == "" {
		return NewValidationError("title", "is required", ErrValidation)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return NewValidationError("title", "must be at most 255 characters", ErrValidation)
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > MaxDescriptionLength {
		return NewValidationError("description", "must be at most 1000 characters", ErrValidation)
	}
	return nil
}

func normalizeDueDate(dueDate *time.Time) *time.Time {
	if dueDate == nil {
		return nil
	}
	utc := dueDate.UTC()
	return &utc
}
