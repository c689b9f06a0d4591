package task

import "math"

// Summary holds derived task statistics for a user.
// It is recomputed on demand and never persisted.
type Summary struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Pending        int     `json:"pending"`
	CompletionRate float64 `json:"completion_rate"`
}

// Summarize computes totals and the completion rate over a task collection.
// The rate is completed/total as a percentage rounded to one decimal,
// or 0 when there are no tasks.
func Summarize(tasks []*Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.IsCompleted() {
			s.Completed++
		} else {
			s.Pending++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = math.Round(float64(s.Completed)/float64(s.Total)*1000) / 10
	}
	return s
}
