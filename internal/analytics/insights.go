package analytics

import (
	"fmt"
	"time"

	"github.com/pmateos/devtrack/internal/task"
)

// Insights builds an ordered list of heuristic productivity sentences.
// Each heuristic is independent and omitted when its precondition fails,
// except the completion-rate commentary which is always present. Ties
// for the most productive weekday and favorite platform resolve to the
// first label reaching the maximum in first-seen order.
func Insights(now time.Time, tasks []*task.Task) []string {
	var insights []string

	if day := mostProductiveWeekday(now, tasks); day != "" {
		insights = append(insights, fmt.Sprintf("You're most productive on %ss!", day))
	}

	if platforms := PlatformDistribution(tasks); len(platforms.Labels) > 0 {
		name, count := maxEntry(platforms)
		insights = append(insights, fmt.Sprintf("Your most used platform is %s with %d tasks.", name, count))
	}

	if streak := Streak(now, tasks); streak > 0 {
		insights = append(insights, fmt.Sprintf("You're on a %d-day streak! Keep it up!", streak))
	}

	stats := task.Summarize(tasks)
	switch {
	case stats.CompletionRate >= 80:
		insights = append(insights, fmt.Sprintf("Excellent! You've completed %.1f%% of your tasks.", stats.CompletionRate))
	case stats.CompletionRate >= 50:
		insights = append(insights, fmt.Sprintf("Good progress! %.1f%% completion rate.", stats.CompletionRate))
	default:
		insights = append(insights, fmt.Sprintf("You have %d pending tasks. Time to tackle them!", stats.Pending))
	}

	return insights
}

// mostProductiveWeekday returns the weekday name with the most task
// completions, or "" when no task has been completed. Ties resolve to
// the weekday first encountered in the task collection.
func mostProductiveWeekday(now time.Time, tasks []*task.Task) string {
	counts := make(map[string]int)
	var order []string

	for _, t := range tasks {
		if !t.IsCompleted() || t.CompletedAt == nil {
			continue
		}
		day := t.CompletedAt.In(now.Location()).Weekday().String()
		if _, seen := counts[day]; !seen {
			order = append(order, day)
		}
		counts[day]++
	}

	best := ""
	bestCount := 0
	for _, day := range order {
		if counts[day] > bestCount {
			best = day
			bestCount = counts[day]
		}
	}
	return best
}

// maxEntry returns the label with the highest count in the series,
// resolving ties to the earliest position.
func maxEntry(s Series) (string, int) {
	best := ""
	bestCount := 0
	for i, label := range s.Labels {
		if s.Data[i] > bestCount {
			best = label
			bestCount = s.Data[i]
		}
	}
	return best, bestCount
}
