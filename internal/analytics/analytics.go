package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/pmateos/devtrack/internal/task"
)

// ChartData is the dashboard payload consumed by the presentation layer.
type ChartData struct {
	Weekly   Series   `json:"weekly"`
	Platform Series   `json:"platform"`
	Daily    Series   `json:"daily"`
	Insights []string `json:"insights"`
}

// Compute derives the full chart payload from a task collection.
func Compute(now time.Time, tasks []*task.Task) ChartData {
	return ChartData{
		Weekly:   WeeklyCompletions(now, tasks),
		Platform: PlatformDistribution(tasks),
		Daily:    DailyCompletions(now, tasks),
		Insights: Insights(now, tasks),
	}
}

// Build loads a user's tasks from the repository and computes the chart
// payload for them.
func Build(ctx context.Context, repo task.Repository, userID int64, now time.Time) (ChartData, error) {
	tasks, err := repo.ListTasks(ctx, userID, task.Filter{})
	if err != nil {
		return ChartData{}, fmt.Errorf("fetching tasks: %w", err)
	}
	return Compute(now, tasks), nil
}
