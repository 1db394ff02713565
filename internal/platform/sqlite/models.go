package sqlite

import (
	"time"

	"github.com/phrazzld/taskmanager-api/internal/domain"
)

type userRecord struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	Email          string `gorm:"size:255;not null;uniqueIndex"`
	FirstName      string `gorm:"size:100;not null"`
	LastName       string `gorm:"size:100;not null"`
	HashedPassword string `gorm:"size:255;not null"`
}

func (userRecord) TableName() string {
	return "users"
}

func newUserRecord(u *domain.User) *userRecord {
	return &userRecord{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		HashedPassword: u.HashedPassword,
	}
}

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:             r.ID,
		Email:          r.Email,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		HashedPassword: r.HashedPassword,
	}
}

type taskRecord struct {
	ID          int64       `gorm:"primaryKey;autoIncrement"`
	Title       string      `gorm:"size:255;not null"`
	Description *string     `gorm:"size:1000"`
	Status      string      `gorm:"size:20;not null;check:status IN ('To-Do','In-Progress','Completed')"`
	Priority    string      `gorm:"size:20;not null;check:priority IN ('Low','Medium','High')"`
	DueDate     *time.Time
	OwnerID     int64       `gorm:"not null;index"`
	Owner       *userRecord `gorm:"foreignKey:OwnerID"`
	AssigneeID  *int64      `gorm:"index"`
	Assignee    *userRecord `gorm:"foreignKey:AssigneeID"`
	CreatedAt   time.Time   `gorm:"not null"`
}

func (taskRecord) TableName() string {
	return "tasks"
}

func newTaskRecord(t *domain.Task) *taskRecord {
	return &taskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		OwnerID:     t.OwnerID,
		AssigneeID:  t.AssigneeID,
		CreatedAt:   t.CreatedAt,
	}
}

func (r *taskRecord) toDomain() *domain.Task {
	task := &domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.TaskStatus(r.Status),
		Priority:    domain.TaskPriority(r.Priority),
		OwnerID:     r.OwnerID,
		AssigneeID:  r.AssigneeID,
		CreatedAt:   r.CreatedAt.UTC(),
	}
	if r.DueDate != nil {
		due := r.DueDate.UTC()
		task.DueDate = &due
	}
	return task
}

// taskViewRow is the result shape of the joined task/user select.
type taskViewRow struct {
	ID           int64
	Title        string
	Description  *string
	Status       string
	Priority     string
	DueDate      *time.Time
	OwnerID      int64
	AssigneeID   *int64
	CreatedAt    time.Time
	OwnerName    string
	AssigneeName *string
}

func (r *taskViewRow) toDomain() *domain.TaskView {
	record := taskRecord{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
		OwnerID:     r.OwnerID,
		AssigneeID:  r.AssigneeID,
		CreatedAt:   r.CreatedAt,
	}
	return &domain.TaskView{
		Task:         *record.toDomain(),
		OwnerName:    r.OwnerName,
		AssigneeName: r.AssigneeName,
	}
}
