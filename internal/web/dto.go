package web

import (
	"encoding/json"
	"time"

	"github.com/pmateos/devtrack/internal/platform"
	"github.com/pmateos/devtrack/internal/task"
)

// timestampFormat is the wire format for task timestamps.
const timestampFormat = "2006-01-02 15:04:05"

// RegisterDTO is the payload for creating an account.
type RegisterDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginDTO is the payload for obtaining a session token.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TaskInputDTO is the payload for creating or editing a task.
type TaskInputDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Platform    string `json:"platform"`
}

// SyncDTO is the payload for a platform sync request.
type SyncDTO struct {
	Username string `json:"username"`
}

// TaskDTO is the wire representation of a task.
type TaskDTO struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Platform    string  `json:"platform"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at"`
}

func taskToDTO(t *task.Task) TaskDTO {
	dto := TaskDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Platform:    t.Platform,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt.Format(timestampFormat),
	}
	if t.CompletedAt != nil {
		s := t.CompletedAt.Format(timestampFormat)
		dto.CompletedAt = &s
	}
	return dto
}

// PlatformStatsDTO is the wire representation of a stored snapshot.
type PlatformStatsDTO struct {
	Data        json.RawMessage `json:"data"`
	LastUpdated string          `json:"last_updated"`
}

func recordsToDTO(records []*platform.Record) map[string]PlatformStatsDTO {
	out := make(map[string]PlatformStatsDTO, len(records))
	for _, r := range records {
		out[r.Platform] = PlatformStatsDTO{
			Data:        r.Data,
			LastUpdated: r.LastUpdated.Format(timestampFormat),
		}
	}
	return out
}

func formatTime(t time.Time) string {
	return t.Format(timestampFormat)
}
