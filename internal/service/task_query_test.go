package service

import (
	"math"
	"testing"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTaskQuery(t *testing.T) {
	t.Parallel()

	identity := domain.Identity{ID: 7, Email: "g@example.com"}
	completed := domain.TaskStatusCompleted
	high := domain.TaskPriorityHigh

	t.Run("defaults", func(t *testing.T) {
		filter, err := BuildTaskQuery(identity, NewTaskQuery())
		require.NoError(t, err)
		assert.Nil(t, filter.VisibleTo)
		assert.Nil(t, filter.Status)
		assert.Nil(t, filter.Priority)
		assert.Empty(t, filter.Search)
		assert.Equal(t, 0, filter.Offset)
		assert.Equal(t, DefaultLimit, filter.Limit)
	})

	t.Run("all dimensions", func(t *testing.T) {
		filter, err := BuildTaskQuery(identity, TaskQuery{
			Page:     3,
			Limit:    10,
			Status:   &completed,
			Priority: &high,
			MyTasks:  true,
			Search:   "Report",
		})
		require.NoError(t, err)
		require.NotNil(t, filter.VisibleTo)
		assert.Equal(t, int64(7), *filter.VisibleTo)
		assert.Equal(t, &completed, filter.Status)
		assert.Equal(t, &high, filter.Priority)
		assert.Equal(t, "Report", filter.Search)
		assert.Equal(t, 20, filter.Offset)
		assert.Equal(t, 10, filter.Limit)
	})

	t.Run("second page skips exactly one page", func(t *testing.T) {
		filter, err := BuildTaskQuery(identity, TaskQuery{Page: 2, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 10, filter.Offset)
	})

	t.Run("huge page saturates", func(t *testing.T) {
		filter, err := BuildTaskQuery(identity, TaskQuery{Page: math.MaxInt, Limit: 100})
		require.NoError(t, err)
		assert.Equal(t, math.MaxInt, filter.Offset)
	})
}

func TestBuildTaskQuery_InvalidPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		page  int
		limit int
	}{
		{"zero page", 0, 10},
		{"negative page", -1, 10},
		{"zero limit", 1, 0},
		{"negative limit", 1, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTaskQuery(domain.Identity{ID: 1}, TaskQuery{Page: tt.page, Limit: tt.limit})
			assert.ErrorIs(t, err, ErrInvalidPagination)
		})
	}
}

func TestServiceError(t *testing.T) {
	t.Parallel()

	cause := assert.AnError
	err := newTaskServiceError("update_task", cause)
	assert.Equal(t, "task service update_task failed: "+cause.Error(), err.Error())
	assert.ErrorIs(t, err, cause)

	bare := &ServiceError{Service: "user", Operation: "signup"}
	assert.Equal(t, "user service signup failed", bare.Error())
}
