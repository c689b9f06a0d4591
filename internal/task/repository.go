package task

import (
	"context"
)

// Filter narrows task queries. Zero values mean no filtering.
type Filter struct {
	Status   Status // only tasks with this status
	Platform string // only tasks with this platform label, case-sensitive
}

// Repository defines the storage interface for tasks.
type Repository interface {
	// CreateTask adds a new task to the repository.
	CreateTask(ctx context.Context, t *Task) error

	// GetTask retrieves a task by ID. Returns nil when not found.
	GetTask(ctx context.Context, id int64) (*Task, error)

	// UpdateTask persists changes to title, description, platform,
	// status and completion timestamp.
	UpdateTask(ctx context.Context, t *Task) error

	// DeleteTask removes a task by ID.
	DeleteTask(ctx context.Context, id int64) error

	// ListTasks returns a user's tasks matching the filter,
	// ordered by creation time, newest first.
	ListTasks(ctx context.Context, userID int64, f Filter) ([]*Task, error)

	// CountTasks returns the number of a user's tasks matching the filter.
	CountTasks(ctx context.Context, userID int64, f Filter) (int, error)

	// ListPlatforms returns the distinct platform labels of a user's tasks.
	ListPlatforms(ctx context.Context, userID int64) ([]string, error)
}
