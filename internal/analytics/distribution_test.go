package analytics

import (
	"testing"

	"github.com/pmateos/devtrack/internal/task"
)

func TestPlatformDistribution(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		s := PlatformDistribution(nil)
		if len(s.Labels) != 0 || len(s.Data) != 0 {
			t.Errorf("got %v / %v, want empty series", s.Labels, s.Data)
		}
	})

	t.Run("groups in first-seen order", func(t *testing.T) {
		tasks := []*task.Task{
			pending("LeetCode"),
			pending("GitHub"),
			pending("LeetCode"),
			pending("Kaggle"),
			completedOn(t, "GitHub", "2025-06-18"),
			pending("LeetCode"),
		}

		s := PlatformDistribution(tasks)

		wantLabels := []string{"LeetCode", "GitHub", "Kaggle"}
		wantData := []int{3, 2, 1}

		if len(s.Labels) != len(s.Data) {
			t.Fatalf("labels and data misaligned: %d vs %d", len(s.Labels), len(s.Data))
		}
		for i := range wantLabels {
			if s.Labels[i] != wantLabels[i] {
				t.Errorf("label %d: got %q, want %q", i, s.Labels[i], wantLabels[i])
			}
			if s.Data[i] != wantData[i] {
				t.Errorf("count %d: got %d, want %d", i, s.Data[i], wantData[i])
			}
		}
	})

	t.Run("labels are case-sensitive", func(t *testing.T) {
		tasks := []*task.Task{
			pending("github"),
			pending("GitHub"),
		}

		s := PlatformDistribution(tasks)

		if len(s.Labels) != 2 {
			t.Fatalf("got %d labels, want 2 (no case folding)", len(s.Labels))
		}
	})
}
