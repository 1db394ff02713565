package service

import (
	"math"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/domain/access"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// Pagination defaults applied when a listing omits page or limit.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// TaskQuery holds the parameters of a task listing.
type TaskQuery struct {
	Page     int
	Limit    int
	Status   *domain.TaskStatus
	Priority *domain.TaskPriority
	// MyTasks restricts the listing to tasks the caller owns or is assigned.
	MyTasks bool
	// Search is a case-sensitive title substring; empty means no search.
	Search string
}

// NewTaskQuery returns a query with the default page and limit.
func NewTaskQuery() TaskQuery {
	return TaskQuery{Page: DefaultPage, Limit: DefaultLimit}
}

// BuildTaskQuery composes q into the filter the task store executes for
// identity. All dimensions combine with AND; pagination is applied last.
// Returns ErrInvalidPagination when page or limit is below 1.
func BuildTaskQuery(identity domain.Identity, q TaskQuery) (store.TaskFilter, error) {
	if q.Page < 1 || q.Limit < 1 {
		return store.TaskFilter{}, ErrInvalidPagination
	}

	return store.TaskFilter{
		VisibleTo: access.ListScope(identity, q.MyTasks),
		Status:    q.Status,
		Priority:  q.Priority,
		Search:    q.Search,
		Offset:    pageOffset(q.Page, q.Limit),
		Limit:     q.Limit,
	}, nil
}

// pageOffset is (page-1)*limit, saturating instead of overflowing.
func pageOffset(page, limit int) int {
	skipped := page - 1
	if skipped > math.MaxInt/limit {
		return math.MaxInt
	}
	return skipped * limit
}
