package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	CreateTaskFn func(ctx context.Context, identity domain.Identity, draft domain.TaskDraft) (*domain.TaskView, error)
	GetTaskFn    func(ctx context.Context, identity domain.Identity, id int64) (*domain.TaskView, error)
	ListTasksFn  func(ctx context.Context, identity domain.Identity, query service.TaskQuery) ([]*domain.TaskView, error)
	UpdateTaskFn func(ctx context.Context, identity domain.Identity, id int64, patch domain.TaskPatch) (*domain.TaskView, error)
	DeleteTaskFn func(ctx context.Context, identity domain.Identity, id int64) (*service.DeletedTask, error)

	// Default response values
	Task    *domain.TaskView
	Tasks   []*domain.TaskView
	Deleted *service.DeletedTask
	Err     error

	// Call tracking for verification
	Calls struct {
		mu         sync.Mutex
		Identities []domain.Identity
		Drafts     []domain.TaskDraft
		Queries    []service.TaskQuery
		Patches    []domain.TaskPatch
		TaskIDs    []int64
	}
}

var _ service.TaskService = (*MockTaskService)(nil)

func (m *MockTaskService) record(identity domain.Identity, update func()) {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	m.Calls.Identities = append(m.Calls.Identities, identity)
	if update != nil {
		update()
	}
}

// CreateTask implements the service.TaskService interface
func (m *MockTaskService) CreateTask(
	ctx context.Context,
	identity domain.Identity,
	draft domain.TaskDraft,
) (*domain.TaskView, error) {
	m.record(identity, func() { m.Calls.Drafts = append(m.Calls.Drafts, draft) })
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, identity, draft)
	}
	return m.Task, m.Err
}

// GetTask implements the service.TaskService interface
func (m *MockTaskService) GetTask(ctx context.Context, identity domain.Identity, id int64) (*domain.TaskView, error) {
	m.record(identity, func() { m.Calls.TaskIDs = append(m.Calls.TaskIDs, id) })
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, identity, id)
	}
	return m.Task, m.Err
}

// ListTasks implements the service.TaskService interface
func (m *MockTaskService) ListTasks(
	ctx context.Context,
	identity domain.Identity,
	query service.TaskQuery,
) ([]*domain.TaskView, error) {
	m.record(identity, func() { m.Calls.Queries = append(m.Calls.Queries, query) })
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, identity, query)
	}
	return m.Tasks, m.Err
}

// UpdateTask implements the service.TaskService interface
func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	identity domain.Identity,
	id int64,
	patch domain.TaskPatch,
) (*domain.TaskView, error) {
	m.record(identity, func() {
		m.Calls.TaskIDs = append(m.Calls.TaskIDs, id)
		m.Calls.Patches = append(m.Calls.Patches, patch)
	})
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, identity, id, patch)
	}
	return m.Task, m.Err
}

// DeleteTask implements the service.TaskService interface
func (m *MockTaskService) DeleteTask(
	ctx context.Context,
	identity domain.Identity,
	id int64,
) (*service.DeletedTask, error) {
	m.record(identity, func() { m.Calls.TaskIDs = append(m.Calls.TaskIDs, id) })
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, identity, id)
	}
	return m.Deleted, m.Err
}

// LastPatch returns the most recent patch passed to UpdateTask.
func (m *MockTaskService) LastPatch() (domain.TaskPatch, bool) {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	if len(m.Calls.Patches) == 0 {
		return domain.TaskPatch{}, false
	}
	return m.Calls.Patches[len(m.Calls.Patches)-1], true
}

// LastQuery returns the most recent query passed to ListTasks.
func (m *MockTaskService) LastQuery() (service.TaskQuery, bool) {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	if len(m.Calls.Queries) == 0 {
		return service.TaskQuery{}, false
	}
	return m.Calls.Queries[len(m.Calls.Queries)-1], true
}

// LastDraft returns the most recent draft passed to CreateTask.
func (m *MockTaskService) LastDraft() (domain.TaskDraft, bool) {
	m.Calls.mu.Lock()
	defer m.Calls.mu.Unlock()
	if len(m.Calls.Drafts) == 0 {
		return domain.TaskDraft{}, false
	}
	return m.Calls.Drafts[len(m.Calls.Drafts)-1], true
}
