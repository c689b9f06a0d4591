package platform

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newLeetCodeServer(t *testing.T, status int, body string) *LeetCodeClient {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("got method %s, want POST", r.Method)
		}
		payload, _ := io.ReadAll(r.Body)
		var req struct {
			Query     string            `json:"query"`
			Variables map[string]string `json:"variables"`
		}
		if err := json.Unmarshal(payload, &req); err != nil {
			t.Errorf("request body is not valid JSON: %v", err)
		}
		if req.Query == "" {
			t.Error("expected a GraphQL query document")
		}

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	client := NewLeetCodeClient(5 * time.Second)
	client.url = server.URL
	return client
}

func TestLeetCodeFetch(t *testing.T) {
	client := newLeetCodeServer(t, http.StatusOK, `{
		"data": {
			"matchedUser": {
				"username": "coder",
				"profile": {"ranking": 12345, "reputation": 67},
				"submitStats": {
					"acSubmissionNum": [
						{"difficulty": "All", "count": 120},
						{"difficulty": "Easy", "count": 50},
						{"difficulty": "Medium", "count": 60},
						{"difficulty": "Hard", "count": 10}
					]
				}
			}
		}
	}`)

	snapshot, err := client.Fetch(context.Background(), "coder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snapshot.Username != "coder" {
		t.Errorf("got username %q, want %q", snapshot.Username, "coder")
	}
	if snapshot.Ranking != "12345" {
		t.Errorf("got ranking %q, want %q", snapshot.Ranking, "12345")
	}
	if snapshot.Reputation != 67 {
		t.Errorf("got reputation %d, want 67", snapshot.Reputation)
	}

	want := ProblemsSolved{Total: 120, Easy: 50, Medium: 60, Hard: 10}
	if snapshot.ProblemsSolved != want {
		t.Errorf("got %+v, want %+v", snapshot.ProblemsSolved, want)
	}
}

func TestLeetCodeFetch_UnknownDifficultyIgnored(t *testing.T) {
	client := newLeetCodeServer(t, http.StatusOK, `{
		"data": {
			"matchedUser": {
				"username": "coder",
				"profile": {},
				"submitStats": {
					"acSubmissionNum": [
						{"difficulty": "eAsY", "count": 5},
						{"difficulty": "Brutal", "count": 99}
					]
				}
			}
		}
	}`)

	snapshot, err := client.Fetch(context.Background(), "coder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := ProblemsSolved{Easy: 5}
	if snapshot.ProblemsSolved != want {
		t.Errorf("got %+v, want %+v (difficulty match is case-insensitive, unknown labels dropped)", snapshot.ProblemsSolved, want)
	}
}

func TestLeetCodeFetch_ProfileDefaults(t *testing.T) {
	client := newLeetCodeServer(t, http.StatusOK, `{
		"data": {
			"matchedUser": {
				"username": "coder",
				"profile": {},
				"submitStats": {"acSubmissionNum": []}
			}
		}
	}`)

	snapshot, err := client.Fetch(context.Background(), "coder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snapshot.Ranking != "N/A" {
		t.Errorf("got ranking %q, want %q", snapshot.Ranking, "N/A")
	}
	if snapshot.Reputation != 0 {
		t.Errorf("got reputation %d, want 0", snapshot.Reputation)
	}
}

func TestLeetCodeFetch_Errors(t *testing.T) {
	t.Run("missing username", func(t *testing.T) {
		client := NewLeetCodeClient(time.Second)
		_, err := client.Fetch(context.Background(), "")
		if !errors.Is(err, ErrUsernameRequired) {
			t.Errorf("got %v, want ErrUsernameRequired", err)
		}
	})

	t.Run("non-2xx status", func(t *testing.T) {
		client := newLeetCodeServer(t, http.StatusTooManyRequests, `{}`)
		_, err := client.Fetch(context.Background(), "coder")

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("got %v, want *APIError", err)
		}
		if apiErr.Status != http.StatusTooManyRequests {
			t.Errorf("got status %d, want 429", apiErr.Status)
		}
	})

	t.Run("error marker in body", func(t *testing.T) {
		client := newLeetCodeServer(t, http.StatusOK, `{
			"errors": [{"message": "user does not exist"}],
			"data": {"matchedUser": null}
		}`)
		_, err := client.Fetch(context.Background(), "coder")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("got %v, want ErrUserNotFound", err)
		}
	})

	t.Run("no matched user", func(t *testing.T) {
		client := newLeetCodeServer(t, http.StatusOK, `{"data": {"matchedUser": null}}`)
		_, err := client.Fetch(context.Background(), "ghost")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("got %v, want ErrUserNotFound", err)
		}
	})
}
