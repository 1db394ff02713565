package mocks

import (
	"context"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	SignupFn        func(ctx context.Context, input service.SignupInput) (*domain.User, error)
	LoginFn         func(ctx context.Context, email, password string) (*service.LoginResult, error)
	ListUsersFn     func(ctx context.Context) ([]*domain.User, error)
	ListAssigneesFn func(ctx context.Context) ([]service.Assignee, error)

	// Default response values
	User        *domain.User
	LoginResult *service.LoginResult
	Users       []*domain.User
	Assignees   []service.Assignee
	Err         error

	// LastSignup and LastLoginEmail record the most recent arguments.
	LastSignup     service.SignupInput
	LastLoginEmail string
}

var _ service.UserService = (*MockUserService)(nil)

// Signup implements the service.UserService interface
func (m *MockUserService) Signup(ctx context.Context, input service.SignupInput) (*domain.User, error) {
	m.LastSignup = input
	if m.SignupFn != nil {
		return m.SignupFn(ctx, input)
	}
	return m.User, m.Err
}

// Login implements the service.UserService interface
func (m *MockUserService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	m.LastLoginEmail = email
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return m.LoginResult, m.Err
}

// ListUsers implements the service.UserService interface
func (m *MockUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx)
	}
	return m.Users, m.Err
}

// ListAssignees implements the service.UserService interface
func (m *MockUserService) ListAssignees(ctx context.Context) ([]service.Assignee, error) {
	if m.ListAssigneesFn != nil {
		return m.ListAssigneesFn(ctx)
	}
	return m.Assignees, m.Err
}
