package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/store"
	"github.com/phrazzld/taskmanager-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func newTask(t *testing.T, stores store.Stores, ownerID int64, title string, assigneeID *int64) *domain.Task {
	t.Helper()
	task := &domain.Task{
		Title:      title,
		Status:     domain.TaskStatusToDo,
		Priority:   domain.TaskPriorityMedium,
		OwnerID:    ownerID,
		AssigneeID: assigneeID,
		CreatedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, stores.Tasks.Create(context.Background(), task))
	return task
}

func TestUserStore(t *testing.T) {
	stores, _ := testdb.NewSQLiteStores(t)
	ctx := context.Background()

	ada := testdb.MustCreateUser(t, stores.Users, "ada@example.com", "Ada", "Lovelace")
	grace := testdb.MustCreateUser(t, stores.Users, "grace@example.com", "Grace", "Hopper")
	assert.Less(t, ada.ID, grace.ID)

	t.Run("get by email", func(t *testing.T) {
		got, err := stores.Users.GetByEmail(ctx, "grace@example.com")
		require.NoError(t, err)
		assert.Equal(t, grace.ID, got.ID)
		assert.Equal(t, "Hopper", got.LastName)
		assert.NotEmpty(t, got.HashedPassword)
	})

	t.Run("email lookup is exact", func(t *testing.T) {
		_, err := stores.Users.GetByEmail(ctx, "GRACE@example.com")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("get by id missing", func(t *testing.T) {
		_, err := stores.Users.GetByID(ctx, 999)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := &domain.User{Email: "ada@example.com", FirstName: "A", LastName: "L", HashedPassword: ada.HashedPassword}
		err := stores.Users.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := stores.Users.Exists(ctx, ada.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = stores.Users.Exists(ctx, 12345)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("list ordered by id", func(t *testing.T) {
		users, err := stores.Users.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, ada.ID, users[0].ID)
		assert.Equal(t, grace.ID, users[1].ID)
	})
}

func TestTaskStore_CRUD(t *testing.T) {
	stores, _ := testdb.NewSQLiteStores(t)
	ctx := context.Background()

	owner := testdb.MustCreateUser(t, stores.Users, "owner@example.com", "Olive", "Owner")
	assignee := testdb.MustCreateUser(t, stores.Users, "assignee@example.com", "Andy", "Assignee")

	due := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	task := &domain.Task{
		Title:       "Write report",
		Description: ptr("numbers"),
		Status:      domain.TaskStatusInProgress,
		Priority:    domain.TaskPriorityHigh,
		DueDate:     &due,
		OwnerID:     owner.ID,
		AssigneeID:  &assignee.ID,
		CreatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, stores.Tasks.Create(ctx, task))
	require.NotZero(t, task.ID)

	got, err := stores.Tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", got.Title)
	assert.Equal(t, "numbers", *got.Description)
	assert.Equal(t, domain.TaskStatusInProgress, got.Status)
	require.NotNil(t, got.DueDate)
	assert.True(t, due.Equal(*got.DueDate))
	assert.Equal(t, assignee.ID, *got.AssigneeID)

	view, err := stores.Tasks.GetView(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Olive Owner", view.OwnerName)
	require.NotNil(t, view.AssigneeName)
	assert.Equal(t, "Andy Assignee", *view.AssigneeName)

	got.Title = "Write final report"
	got.AssigneeID = nil
	got.Description = nil
	require.NoError(t, stores.Tasks.Update(ctx, got))

	view, err = stores.Tasks.GetView(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write final report", view.Title)
	assert.Nil(t, view.AssigneeID)
	assert.Nil(t, view.AssigneeName)
	assert.Nil(t, view.Description)
	assert.True(t, task.CreatedAt.Equal(view.CreatedAt), "created_at must not change")

	require.NoError(t, stores.Tasks.Delete(ctx, task.ID))
	_, err = stores.Tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	_, err = stores.Tasks.GetView(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	assert.ErrorIs(t, stores.Tasks.Delete(ctx, task.ID), store.ErrTaskNotFound)
	assert.ErrorIs(t, stores.Tasks.Update(ctx, got), store.ErrTaskNotFound)
}

func TestTaskStore_UnknownAssigneeViolatesForeignKey(t *testing.T) {
	stores, _ := testdb.NewSQLiteStores(t)
	owner := testdb.MustCreateUser(t, stores.Users, "owner@example.com", "Olive", "Owner")

	task := &domain.Task{
		Title:      "Orphan",
		Status:     domain.TaskStatusToDo,
		Priority:   domain.TaskPriorityLow,
		OwnerID:    owner.ID,
		AssigneeID: ptr(int64(999)),
		CreatedAt:  time.Now().UTC(),
	}
	err := stores.Tasks.Create(context.Background(), task)
	assert.ErrorIs(t, err, store.ErrUnknownUserReference)
}

func TestTaskStore_List(t *testing.T) {
	stores, _ := testdb.NewSQLiteStores(t)
	ctx := context.Background()

	alice := testdb.MustCreateUser(t, stores.Users, "alice@example.com", "Alice", "A")
	bob := testdb.MustCreateUser(t, stores.Users, "bob@example.com", "Bob", "B")
	carol := testdb.MustCreateUser(t, stores.Users, "carol@example.com", "Carol", "C")

	t1 := newTask(t, stores, alice.ID, "Report draft", nil)
	t2 := newTask(t, stores, bob.ID, "report review", &alice.ID)
	t3 := newTask(t, stores, carol.ID, "Plan offsite", nil)
	t4 := newTask(t, stores, bob.ID, "Quarterly Report", nil)

	t2.Status = domain.TaskStatusCompleted
	t2.Priority = domain.TaskPriorityHigh
	require.NoError(t, stores.Tasks.Update(ctx, t2))

	ids := func(views []*domain.TaskView) []int64 {
		out := make([]int64, 0, len(views))
		for _, v := range views {
			out = append(out, v.ID)
		}
		return out
	}

	status := domain.TaskStatusCompleted
	priority := domain.TaskPriorityMedium

	tests := []struct {
		name   string
		filter store.TaskFilter
		want   []int64
	}{
		{"all tasks by id", store.TaskFilter{}, []int64{t1.ID, t2.ID, t3.ID, t4.ID}},
		{"visible to alice", store.TaskFilter{VisibleTo: &alice.ID}, []int64{t1.ID, t2.ID}},
		{"status", store.TaskFilter{Status: &status}, []int64{t2.ID}},
		{"priority", store.TaskFilter{Priority: &priority}, []int64{t1.ID, t3.ID, t4.ID}},
		{"search is case-sensitive", store.TaskFilter{Search: "Report"}, []int64{t1.ID, t4.ID}},
		{"visible and search", store.TaskFilter{VisibleTo: &bob.ID, Search: "Report"}, []int64{t4.ID}},
		{"first page", store.TaskFilter{Limit: 2}, []int64{t1.ID, t2.ID}},
		{"second page", store.TaskFilter{Offset: 2, Limit: 2}, []int64{t3.ID, t4.ID}},
		{"past the end", store.TaskFilter{Offset: 10, Limit: 2}, []int64{}},
		{"unknown status", store.TaskFilter{Status: ptr(domain.TaskStatus("Blocked"))}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			views, err := stores.Tasks.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(views))
		})
	}

	views, err := stores.Tasks.List(ctx, store.TaskFilter{VisibleTo: &alice.ID})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Bob B", views[1].OwnerName)
	require.NotNil(t, views[1].AssigneeName)
	assert.Equal(t, "Alice A", *views[1].AssigneeName)
}

func TestTransactor(t *testing.T) {
	stores, tx := testdb.NewSQLiteStores(t)
	ctx := context.Background()
	owner := testdb.MustCreateUser(t, stores.Users, "owner@example.com", "Olive", "Owner")

	t.Run("commit", func(t *testing.T) {
		var id int64
		err := tx.WithinTx(ctx, func(ctx context.Context, s store.Stores) error {
			task := newTask(t, s, owner.ID, "committed", nil)
			id = task.ID
			return nil
		})
		require.NoError(t, err)

		_, err = stores.Tasks.GetByID(ctx, id)
		assert.NoError(t, err)
	})

	t.Run("rollback", func(t *testing.T) {
		var id int64
		boom := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context, s store.Stores) error {
			task := newTask(t, s, owner.ID, "rolled back", nil)
			id = task.ID
			return fmt.Errorf("after insert: %w", boom)
		})
		assert.ErrorIs(t, err, boom)

		_, err = stores.Tasks.GetByID(ctx, id)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}
