package analytics

import (
	"testing"
	"time"

	"github.com/pmateos/devtrack/internal/task"
)

func TestStreak(t *testing.T) {
	t.Run("no tasks", func(t *testing.T) {
		if got := Streak(now, nil); got != 0 {
			t.Errorf("got %d, want 0", got)
		}
	})

	t.Run("zero when today is empty even with prior completions", func(t *testing.T) {
		var tasks []*task.Task
		for i := 1; i <= 29; i++ {
			day := now.AddDate(0, 0, -i).Format("2006-01-02")
			tasks = append(tasks, completedOn(t, "LeetCode", day))
		}

		if got := Streak(now, tasks); got != 0 {
			t.Errorf("got %d, want 0", got)
		}
	})

	t.Run("counts consecutive days ending today", func(t *testing.T) {
		tasks := []*task.Task{
			completedOn(t, "LeetCode", "2025-06-18"),
			completedOn(t, "GitHub", "2025-06-17"),
			completedOn(t, "LeetCode", "2025-06-16"),
			// gap on June 15
			completedOn(t, "LeetCode", "2025-06-14"),
		}

		if got := Streak(now, tasks); got != 3 {
			t.Errorf("got %d, want 3", got)
		}
	})

	t.Run("multiple completions on one day count once", func(t *testing.T) {
		tasks := []*task.Task{
			completedOn(t, "LeetCode", "2025-06-18"),
			completedOn(t, "GitHub", "2025-06-18"),
		}

		if got := Streak(now, tasks); got != 1 {
			t.Errorf("got %d, want 1", got)
		}
	})

	t.Run("caps at thirty days", func(t *testing.T) {
		var tasks []*task.Task
		for i := 0; i < 60; i++ {
			day := now.AddDate(0, 0, -i).Format("2006-01-02")
			tasks = append(tasks, completedOn(t, "LeetCode", day))
		}

		if got := Streak(now, tasks); got != 30 {
			t.Errorf("got %d, want 30", got)
		}
	})

	t.Run("pending tasks never extend a streak", func(t *testing.T) {
		tasks := []*task.Task{pending("LeetCode")}
		if got := Streak(now, tasks); got != 0 {
			t.Errorf("got %d, want 0", got)
		}
	})
}

func TestStreakDeterministic(t *testing.T) {
	// Same inputs at different wall-clock moments of the same day agree.
	tasks := []*task.Task{completedOn(t, "LeetCode", "2025-06-18")}

	morning := time.Date(2025, 6, 18, 0, 1, 0, 0, time.UTC)
	night := time.Date(2025, 6, 18, 23, 59, 0, 0, time.UTC)

	if a, b := Streak(morning, tasks), Streak(night, tasks); a != b {
		t.Errorf("streak differs across the day: %d vs %d", a, b)
	}
}
