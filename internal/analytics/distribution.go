package analytics

import "github.com/pmateos/devtrack/internal/task"

// PlatformDistribution groups tasks by platform label, case-sensitive,
// in first-seen order over the task collection. Labels and counts are
// always equal length and positionally aligned.
func PlatformDistribution(tasks []*task.Task) Series {
	counts := make(map[string]int)
	var order []string

	for _, t := range tasks {
		if _, seen := counts[t.Platform]; !seen {
			order = append(order, t.Platform)
		}
		counts[t.Platform]++
	}

	s := Series{
		Labels: make([]string, 0, len(order)),
		Data:   make([]int, 0, len(order)),
	}
	for _, platform := range order {
		s.Labels = append(s.Labels, platform)
		s.Data = append(s.Data, counts[platform])
	}

	return s
}
