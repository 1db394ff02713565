package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/service"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
)

// Messages returned for the expected error conditions.
const (
	MsgTaskNotFound       = "Task not found"
	MsgAssigneeNotFound   = "Assignee not found"
	MsgInvalidPagination  = "Page and limit must be greater than 0."
	MsgInvalidCredentials = "Invalid credentials"
	MsgEmailTaken         = "Email already registered"
	MsgPastDueDate        = "Due date cannot be in the past."
	MsgInvalidToken       = "Invalid token"
	MsgInvalidBody        = "Invalid request body"
	MsgUnexpected         = "An unexpected error occurred"
)

// userValidationErrors are the domain.User construction errors; their
// messages are safe to return verbatim.
var userValidationErrors = []error{
	domain.ErrEmptyEmail,
	domain.ErrInvalidEmail,
	domain.ErrEmptyFirstName,
	domain.ErrEmptyLastName,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	// Authentication errors
	case auth.IsAuthenticationError(err):
		return http.StatusUnauthorized

	// Not found errors; denied access is reported the same way
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrAssigneeNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, service.ErrInvalidPagination),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusBadRequest

	// Unprocessable entity errors
	case errors.Is(err, domain.ErrPastDueDate),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTaskStatus),
		errors.Is(err, domain.ErrInvalidTaskPriority),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, shared.ErrInvalidBody),
		errors.As(err, &validationErrs),
		isUserValidationError(err):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	var validationErr *domain.ValidationError
	var validationErrs validator.ValidationErrors

	switch {
	case auth.IsAuthenticationError(err):
		return MsgInvalidToken
	case errors.Is(err, service.ErrTaskNotFound):
		return MsgTaskNotFound
	case errors.Is(err, service.ErrAssigneeNotFound):
		return MsgAssigneeNotFound
	case errors.Is(err, service.ErrEmailTaken):
		return MsgEmailTaken
	case errors.Is(err, service.ErrInvalidPagination):
		return MsgInvalidPagination
	case errors.Is(err, service.ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, domain.ErrPastDueDate):
		return MsgPastDueDate
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)
	case errors.Is(err, shared.ErrInvalidBody):
		return MsgInvalidBody
	case isUserValidationError(err):
		return err.Error()
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTaskStatus),
		errors.Is(err, domain.ErrInvalidTaskPriority):
		return "Validation error"
	default:
		return MsgUnexpected
	}
}

// HandleAPIError writes the status and safe message for err. A non-empty
// fallback replaces the generic message of unexpected errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithHeader("WWW-Authenticate", "Bearer"))
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// SanitizeValidationError turns validator errors into a short message
// naming the first offending field, e.g. "Invalid email: invalid email format".
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	return fmt.Sprintf("Invalid %s: %s", fieldName(fe), getValidationTagMessage(fe.Tag()))
}

// fieldName prefers the JSON name registered on the validator.
func fieldName(fe validator.FieldError) string {
	if name := fe.Field(); name != "" {
		return name
	}
	return fe.StructField()
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

func isUserValidationError(err error) bool {
	for _, target := range userValidationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
