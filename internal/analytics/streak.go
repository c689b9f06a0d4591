package analytics

import (
	"time"

	"github.com/pmateos/devtrack/internal/dateutil"
	"github.com/pmateos/devtrack/internal/task"
)

// streakLookbackDays caps how far back the streak scan walks.
const streakLookbackDays = 30

// Streak returns the number of consecutive days with at least one
// completed task, scanning backward from today. The first empty day
// breaks the streak, so a day without completions today yields 0 even
// when every prior day has completions. The scan never looks back more
// than 30 days.
func Streak(now time.Time, tasks []*task.Task) int {
	today := dateutil.TruncateToDay(now)

	streak := 0
	for i := 0; i < streakLookbackDays; i++ {
		day := today.AddDate(0, 0, -i)
		if completionsOn(day, tasks, now.Location()) == 0 {
			break
		}
		streak++
	}

	return streak
}
