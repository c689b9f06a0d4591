package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultLeetCodeURL = "https://leetcode.com/graphql"

// leetcodeQuery is the fixed GraphQL document for user statistics.
const leetcodeQuery = `
query getUserProfile($username: String!) {
    matchedUser(username: $username) {
        username
        profile {
            ranking
            reputation
        }
        submitStats {
            acSubmissionNum {
                difficulty
                count
            }
        }
    }
}
`

// LeetCodeClient fetches and normalizes LeetCode user statistics.
type LeetCodeClient struct {
	httpClient *http.Client
	url        string
}

// NewLeetCodeClient creates a LeetCode client with the given per-call timeout.
func NewLeetCodeClient(timeout time.Duration) *LeetCodeClient {
	return &LeetCodeClient{
		httpClient: &http.Client{Timeout: timeout},
		url:        defaultLeetCodeURL,
	}
}

// SetURL overrides the GraphQL endpoint, for tests and proxies.
func (c *LeetCodeClient) SetURL(url string) {
	c.url = url
}

// ProblemsSolved breaks accepted submissions down by difficulty.
type ProblemsSolved struct {
	Total  int `json:"total"`
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// LeetCodeSnapshot is the normalized LeetCode statistics schema.
// Ranking is a decimal string, "N/A" when the profile carries none.
type LeetCodeSnapshot struct {
	Username       string         `json:"username"`
	Ranking        string         `json:"ranking"`
	Reputation     int            `json:"reputation"`
	ProblemsSolved ProblemsSolved `json:"problems_solved"`
	LastUpdated    string         `json:"last_updated"`
}

type leetcodeResponse struct {
	Errors []json.RawMessage `json:"errors"`
	Data   struct {
		MatchedUser *struct {
			Username string `json:"username"`
			Profile  struct {
				Ranking    *int `json:"ranking"`
				Reputation *int `json:"reputation"`
			} `json:"profile"`
			SubmitStats struct {
				ACSubmissionNum []struct {
					Difficulty string `json:"difficulty"`
					Count      int    `json:"count"`
				} `json:"acSubmissionNum"`
			} `json:"submitStats"`
		} `json:"matchedUser"`
	} `json:"data"`
}

// Fetch queries the LeetCode GraphQL endpoint and normalizes the
// submission statistics. Failure order: missing username, non-2xx
// status, error marker or missing user in the body.
func (c *LeetCodeClient) Fetch(ctx context.Context, username string) (*LeetCodeSnapshot, error) {
	if username == "" {
		return nil, fmt.Errorf("LeetCode %w", ErrUsernameRequired)
	}

	body, err := json.Marshal(map[string]any{
		"query":     leetcodeQuery,
		"variables": map[string]string{"username": username},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Platform: "LeetCode", Status: resp.StatusCode}
	}

	var parsed leetcodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(parsed.Errors) > 0 || parsed.Data.MatchedUser == nil {
		return nil, ErrUserNotFound
	}

	matched := parsed.Data.MatchedUser
	snapshot := &LeetCodeSnapshot{
		Username:    username,
		Ranking:     "N/A",
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
	if matched.Profile.Ranking != nil {
		snapshot.Ranking = strconv.Itoa(*matched.Profile.Ranking)
	}
	if matched.Profile.Reputation != nil {
		snapshot.Reputation = *matched.Profile.Reputation
	}

	for _, stat := range matched.SubmitStats.ACSubmissionNum {
		switch strings.ToLower(stat.Difficulty) {
		case "all":
			snapshot.ProblemsSolved.Total = stat.Count
		case "easy":
			snapshot.ProblemsSolved.Easy = stat.Count
		case "medium":
			snapshot.ProblemsSolved.Medium = stat.Count
		case "hard":
			snapshot.ProblemsSolved.Hard = stat.Count
		}
		// Unrecognized difficulty labels are ignored.
	}

	return snapshot, nil
}
