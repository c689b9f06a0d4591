// Package task defines the core domain types for devtrack.
package task

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrTitleTooShort   = errors.New("title must be at least 3 characters")
	ErrTitleTooLong    = errors.New("title must not exceed 200 characters")
	ErrDescriptionLong = errors.New("description must not exceed 1000 characters")
	ErrEmptyPlatform   = errors.New("platform cannot be empty")
	ErrInvalidStatus   = errors.New("status must be 'pending' or 'completed'")
)

// Domain errors.
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrNotOwner     = errors.New("task belongs to another user")
)

// Status represents the state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid returns true if the status is a valid value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}

// Task represents a tracked work item tied to a coding platform.
// CompletedAt is non-nil exactly when Status is completed.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Platform    string // free-form label: "LeetCode", "GitHub", "Kaggle", ...
	Status      Status
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// New creates a pending Task with validation.
// title must be 3-200 characters, description at most 1000,
// platform must be non-empty (any label is legal).
func New(userID int64, title, description, platform string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) < 3 {
		return nil, ErrTitleTooShort
	}
	if len(title) > 200 {
		return nil, ErrTitleTooLong
	}
	if len(description) > 1000 {
		return nil, ErrDescriptionLong
	}
	if strings.TrimSpace(platform) == "" {
		return nil, ErrEmptyPlatform
	}

	return &Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Platform:    platform,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// IsCompleted returns true if the task has completed status.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Toggle flips the task between pending and completed.
// Completing sets CompletedAt; reopening clears it.
func (t *Task) Toggle(now time.Time) {
	if t.Status == StatusPending {
		t.Status = StatusCompleted
		completed := now.UTC()
		t.CompletedAt = &completed
	} else {
		t.Status = StatusPending
		t.CompletedAt = nil
	}
}
