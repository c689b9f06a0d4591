// Package analytics turns a user's task history into time-bucketed
// completion series, platform distributions and heuristic insights.
// All functions are pure: given a fixed reference time and task
// collection they always return the same result, and an empty
// collection yields zero-filled series rather than an error.
package analytics

import (
	"fmt"
	"time"

	"github.com/pmateos/devtrack/internal/dateutil"
	"github.com/pmateos/devtrack/internal/task"
)

// Series holds positionally aligned chart labels and counts.
type Series struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// WeeklyCompletions returns completed-task counts for the last 7
// Monday-aligned weeks, oldest first, labeled "Week 1" through "Week 7".
// The newest bucket is the week containing now.
func WeeklyCompletions(now time.Time, tasks []*task.Task) Series {
	s := Series{
		Labels: make([]string, 0, 7),
		Data:   make([]int, 0, 7),
	}

	today := dateutil.TruncateToDay(now)
	for i := 6; i >= 0; i-- {
		weekStart := today.AddDate(0, 0, -(dateutil.ISOWeekday(today) + i*7))
		weekEnd := weekStart.AddDate(0, 0, 6)

		count := 0
		for _, t := range tasks {
			if completedBetween(t, weekStart, weekEnd, now.Location()) {
				count++
			}
		}

		s.Labels = append(s.Labels, fmt.Sprintf("Week %d", 7-i))
		s.Data = append(s.Data, count)
	}

	return s
}

// DailyCompletions returns completed-task counts for the last 30
// calendar days, oldest first, labeled month/day.
func DailyCompletions(now time.Time, tasks []*task.Task) Series {
	s := Series{
		Labels: make([]string, 0, 30),
		Data:   make([]int, 0, 30),
	}

	today := dateutil.TruncateToDay(now)
	for i := 29; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		s.Labels = append(s.Labels, day.Format("01/02"))
		s.Data = append(s.Data, completionsOn(day, tasks, now.Location()))
	}

	return s
}

// completionsOn counts tasks completed on the given calendar day.
func completionsOn(day time.Time, tasks []*task.Task, loc *time.Location) int {
	count := 0
	for _, t := range tasks {
		if !t.IsCompleted() || t.CompletedAt == nil {
			continue
		}
		if dateutil.SameDay(t.CompletedAt.In(loc), day) {
			count++
		}
	}
	return count
}

// completedBetween reports whether the task's completion date falls
// within [start, end] inclusive. Tasks without a completion timestamp
// never match.
func completedBetween(t *task.Task, start, end time.Time, loc *time.Location) bool {
	if !t.IsCompleted() || t.CompletedAt == nil {
		return false
	}
	day := dateutil.TruncateToDay(t.CompletedAt.In(loc))
	return !day.Before(start) && !day.After(end)
}
