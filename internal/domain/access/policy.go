// Package access decides which tasks an identity may read, list, update or
// delete. Owners have full control of their tasks; assignees may only read.
package access

import (
	"github.com/phrazzld/taskmanager-api/internal/domain"
)

// Operation is an action an identity attempts on a task.
type Operation int

// Supported operations
const (
	OpCreate Operation = iota
	OpRead
	OpList
	OpUpdate
	OpDelete
)

// String returns the operation name used in logs.
func (o Operation) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpRead:
		return "read"
	case OpList:
		return "list"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Decision is the outcome of a policy check.
type Decision int

// Possible decisions
const (
	Allow Decision = iota
	// DenyNotFound means the task does not exist for this caller.
	DenyNotFound
	// DenyForbidden means the task exists but the caller may not touch it.
	DenyForbidden
)

// Allowed reports whether d permits the operation.
func (d Decision) Allowed() bool {
	return d == Allow
}

// Decide returns the decision for identity performing op on task. A nil task
// is treated as absent. Create and List are never restricted per task here;
// list restriction is expressed through ListScope.
func Decide(identity domain.Identity, task *domain.Task, op Operation) Decision {
	switch op {
	case OpCreate, OpList:
		return Allow
	}

	if task == nil {
		return DenyNotFound
	}

	switch op {
	case OpRead:
		if task.IsOwnedBy(identity.ID) || task.IsAssignedTo(identity.ID) {
			return Allow
		}
	case OpUpdate, OpDelete:
		if task.IsOwnedBy(identity.ID) {
			return Allow
		}
	default:
		return DenyNotFound
	}

	return DenyForbidden
}

// Conceal folds DenyForbidden into DenyNotFound so callers cannot tell a task
// they may not touch apart from a task that does not exist.
func Conceal(d Decision) Decision {
	if d == DenyForbidden {
		return DenyNotFound
	}
	return d
}

// ListScope returns the user a listing must be restricted to (as owner or
// assignee), or nil when the listing is unrestricted.
func ListScope(identity domain.Identity, myTasks bool) *int64 {
	if !myTasks {
		return nil
	}
	id := identity.ID
	return &id
}
