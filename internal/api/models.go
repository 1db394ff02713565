package api

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/service"
)

// Common request/response structures

// SignupRequest defines the payload for the user signup endpoint.
type SignupRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
}

// LoginRequest holds the form fields of the login endpoint. The username
// field carries the user's email.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is a user as exposed by the API.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// LoginUser carries the display fields returned with a token.
type LoginUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginResponse defines the successful response of the login endpoint.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        LoginUser `json:"user"`
}

// TaskCreateRequest defines the payload for creating a task.
type TaskCreateRequest struct {
	Title       string              `json:"title"       validate:"required,max=255"`
	Description *string             `json:"description" validate:"omitempty,max=1000"`
	Status      domain.TaskStatus   `json:"status"      validate:"omitempty,oneof=To-Do In-Progress Completed"`
	Priority    domain.TaskPriority `json:"priority"    validate:"omitempty,oneof=Low Medium High"`
	DueDate     *FlexibleTime       `json:"due_date"`
	AssigneeID  *int64              `json:"assignee_id"`
}

// UnmarshalJSON implements json.Unmarshaler. Status and priority may be
// omitted but not null.
func (r *TaskCreateRequest) UnmarshalJSON(data []byte) error {
	type plain TaskCreateRequest
	var aux struct {
		plain
		Status   OptionalField[domain.TaskStatus]   `json:"status"`
		Priority OptionalField[domain.TaskPriority] `json:"priority"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Status.isNull() {
		return domain.NewValidationError("status", "may not be null", domain.ErrValidation)
	}
	if aux.Priority.isNull() {
		return domain.NewValidationError("priority", "may not be null", domain.ErrValidation)
	}

	*r = TaskCreateRequest(aux.plain)
	r.Status = aux.Status.Value
	r.Priority = aux.Priority.Value
	return nil
}

// ToDraft converts the request into a domain draft.
func (r TaskCreateRequest) ToDraft() domain.TaskDraft {
	draft := domain.TaskDraft{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		AssigneeID:  r.AssigneeID,
	}
	if r.DueDate != nil {
		due := r.DueDate.Time
		draft.DueDate = &due
	}
	return draft
}

// TaskUpdateRequest defines the payload for a partial task update.
// Omitted fields are left untouched; null clears the nullable fields.
type TaskUpdateRequest struct {
	Title       OptionalField[string]              `json:"title"`
	Description OptionalField[string]              `json:"description"`
	Status      OptionalField[domain.TaskStatus]   `json:"status"`
	Priority    OptionalField[domain.TaskPriority] `json:"priority"`
	DueDate     OptionalField[FlexibleTime]        `json:"due_date"`
	AssigneeID  OptionalField[int64]               `json:"assignee_id"`
}

// ToPatch converts the request into a domain patch. Null is rejected for
// title, status and priority.
func (r TaskUpdateRequest) ToPatch() (domain.TaskPatch, error) {
	var patch domain.TaskPatch

	nonNullable := []struct {
		field string
		null  bool
	}{
		{"title", r.Title.isNull()},
		{"status", r.Status.isNull()},
		{"priority", r.Priority.isNull()},
	}
	for _, f := range nonNullable {
		if f.null {
			return domain.TaskPatch{}, domain.NewValidationError(f.field, "may not be null", domain.ErrValidation)
		}
	}

	if r.Title.Set {
		patch.Title = domain.Some(r.Title.Value)
	}
	if r.Status.Set {
		patch.Status = domain.Some(r.Status.Value)
	}
	if r.Priority.Set {
		patch.Priority = domain.Some(r.Priority.Value)
	}
	if r.Description.Set {
		patch.Description = domain.Some(r.Description.Ptr())
	}
	if r.AssigneeID.Set {
		patch.AssigneeID = domain.Some(r.AssigneeID.Ptr())
	}
	if r.DueDate.Set {
		var due *time.Time
		if !r.DueDate.Null {
			t := r.DueDate.Value.Time
			due = &t
		}
		patch.DueDate = domain.Some(due)
	}

	return patch, nil
}

// OptionalField records whether a JSON member was present and whether it
// was null.
type OptionalField[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for
// members present in the document.
func (o *OptionalField[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Ptr returns nil for a null member and a pointer to the value otherwise.
func (o OptionalField[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}

func (o OptionalField[T]) isNull() bool {
	return o.Set && o.Null
}

// Layouts accepted for due dates. Values without an offset are read as UTC.
var flexibleTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// FlexibleTime is a timestamp that accepts ISO 8601 values with or without
// a UTC offset, down to minute precision, or a bare date read as midnight.
type FlexibleTime struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexibleTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.NewValidationError("due_date", "must be a datetime string", domain.ErrInvalidFormat)
	}

	parsed, err := parseFlexibleTime(raw)
	if err != nil {
		return err
	}
	f.Time = parsed
	return nil
}

func parseFlexibleTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range flexibleTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.NewValidationError("due_date", "must be a valid datetime", domain.ErrInvalidFormat)
}

// TaskResponse is a task as exposed by the API, with the display names of
// its owner and assignee.
type TaskResponse struct {
	ID           int64               `json:"id"`
	Title        string              `json:"title"`
	Description  *string             `json:"description"`
	Status       domain.TaskStatus   `json:"status"`
	Priority     domain.TaskPriority `json:"priority"`
	DueDate      *time.Time          `json:"due_date"`
	OwnerID      int64               `json:"owner_id"`
	AssigneeID   *int64              `json:"assignee_id"`
	CreatedAt    time.Time           `json:"created_at"`
	OwnerName    string              `json:"owner_name"`
	AssigneeName *string             `json:"assignee_name"`
}

// DeleteTaskResponse confirms a deletion.
type DeleteTaskResponse struct {
	Message string `json:"message"`
	TaskID  int64  `json:"task_id"`
	Title   string `json:"title"`
}

// MessageResponse is a bare informational message.
type MessageResponse struct {
	Message string `json:"message"`
}

func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{ID: user.ID, Email: user.Email}
}

func newLoginResponse(result *service.LoginResult) LoginResponse {
	resp := LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
	}
	if result.User != nil {
		resp.User = LoginUser{FirstName: result.User.FirstName, LastName: result.User.LastName}
	}
	return resp
}

func newTaskResponse(view *domain.TaskView) TaskResponse {
	return TaskResponse{
		ID:           view.ID,
		Title:        view.Title,
		Description:  view.Description,
		Status:       view.Status,
		Priority:     view.Priority,
		DueDate:      view.DueDate,
		OwnerID:      view.OwnerID,
		AssigneeID:   view.AssigneeID,
		CreatedAt:    view.CreatedAt,
		OwnerName:    view.OwnerName,
		AssigneeName: view.AssigneeName,
	}
}

func newTaskResponses(views []*domain.TaskView) []TaskResponse {
	out := make([]TaskResponse, 0, len(views))
	for _, view := range views {
		out = append(out, newTaskResponse(view))
	}
	return out
}
