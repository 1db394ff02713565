package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to HTTP status codes.
var (
	// ErrInvalidCredentials indicates a login with an unknown email or a wrong password.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken indicates a signup with an email that is already registered.
	// API layer should map this to HTTP 409 Conflict.
	ErrEmailTaken = errors.New("email already registered")

	// ErrTaskNotFound indicates the task does not exist or the caller may not
	// touch it. The two cases are deliberately indistinguishable.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAssigneeNotFound indicates an assignee_id that references no user.
	// API layer should map this to HTTP 404 Not Found.
	ErrAssigneeNotFound = errors.New("assignee not found")

	// ErrInvalidPagination indicates a page or limit below 1.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidPagination = errors.New("page and limit must be greater than 0")
)

// ServiceError wraps an unexpected failure with the operation that produced it.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %v", e.Service, e.Operation, e.Err)
	}
	return fmt.Sprintf("%s service %s failed", e.Service, e.Operation)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

func newTaskServiceError(operation string, err error) *ServiceError {
	return &ServiceError{Service: "task", Operation: operation, Err: err}
}

func newUserServiceError(operation string, err error) *ServiceError {
	return &ServiceError{Service: "user", Operation: operation, Err: err}
}
