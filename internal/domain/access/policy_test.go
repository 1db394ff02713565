package access

import (
	"testing"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	owner := domain.Identity{ID: 1, Email: "owner@example.com"}
	assignee := domain.Identity{ID: 2, Email: "assignee@example.com"}
	stranger := domain.Identity{ID: 3, Email: "stranger@example.com"}

	assigneeID := assignee.ID
	task := &domain.Task{ID: 10, OwnerID: owner.ID, AssigneeID: &assigneeID}

	tests := []struct {
		name     string
		identity domain.Identity
		task     *domain.Task
		op       Operation
		want     Decision
	}{
		{"owner reads", owner, task, OpRead, Allow},
		{"assignee reads", assignee, task, OpRead, Allow},
		{"stranger reads", stranger, task, OpRead, DenyForbidden},
		{"owner updates", owner, task, OpUpdate, Allow},
		{"assignee updates", assignee, task, OpUpdate, DenyForbidden},
		{"stranger updates", stranger, task, OpUpdate, DenyForbidden},
		{"owner deletes", owner, task, OpDelete, Allow},
		{"assignee deletes", assignee, task, OpDelete, DenyForbidden},
		{"stranger deletes", stranger, task, OpDelete, DenyForbidden},
		{"missing task read", owner, nil, OpRead, DenyNotFound},
		{"missing task update", owner, nil, OpUpdate, DenyNotFound},
		{"missing task delete", owner, nil, OpDelete, DenyNotFound},
		{"anyone creates", stranger, nil, OpCreate, Allow},
		{"anyone lists", stranger, nil, OpList, Allow},
		{"unknown operation", owner, task, Operation(99), DenyNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.identity, tt.task, tt.op))
		})
	}
}

func TestDecide_UnassignedTask(t *testing.T) {
	t.Parallel()

	task := &domain.Task{ID: 5, OwnerID: 1}
	// A zero identity must never match a missing assignee.
	assert.Equal(t, DenyForbidden, Decide(domain.Identity{}, task, OpRead))
}

func TestConceal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Allow, Conceal(Allow))
	assert.Equal(t, DenyNotFound, Conceal(DenyNotFound))
	assert.Equal(t, DenyNotFound, Conceal(DenyForbidden))
	assert.True(t, Allow.Allowed())
	assert.False(t, DenyNotFound.Allowed())
}

func TestListScope(t *testing.T) {
	t.Parallel()

	identity := domain.Identity{ID: 4}
	assert.Nil(t, ListScope(identity, false))

	scope := ListScope(identity, true)
	if assert.NotNil(t, scope) {
		assert.Equal(t, int64(4), *scope)
	}
}

func TestOperationString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "read", OpRead.String())
	assert.Equal(t, "delete", OpDelete.String())
	assert.Equal(t, "unknown", Operation(42).String())
}
