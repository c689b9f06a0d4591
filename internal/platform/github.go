package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultGitHubBaseURL = "https://api.github.com"

// GitHubClient fetches and normalizes GitHub user statistics.
type GitHubClient struct {
	httpClient *http.Client
	baseURL    string
	token      string // optional, raises rate limits
}

// NewGitHubClient creates a GitHub client. token may be empty; timeout
// bounds each of the three fetches independently.
func NewGitHubClient(token string, timeout time.Duration) *GitHubClient {
	return &GitHubClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultGitHubBaseURL,
		token:      token,
	}
}

// SetBaseURL overrides the API root, for tests and proxies.
func (c *GitHubClient) SetBaseURL(url string) {
	c.baseURL = url
}

// RepoSummary is a condensed view of a recently updated repository.
type RepoSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       int    `json:"stars"`
	Language    string `json:"language"`
	UpdatedAt   string `json:"updated_at"`
}

// GitHubSnapshot is the normalized GitHub statistics schema.
type GitHubSnapshot struct {
	Username      string        `json:"username"`
	Name          string        `json:"name"`
	PublicRepos   int           `json:"public_repos"`
	Followers     int           `json:"followers"`
	Following     int           `json:"following"`
	TotalStars    int           `json:"total_stars"`
	RecentRepos   []RepoSummary `json:"recent_repos"`
	RecentCommits int           `json:"recent_commits"`
	LastUpdated   string        `json:"last_updated"`
}

// Raw GitHub API shapes, reduced to the fields the snapshot needs.
type githubUser struct {
	Name        *string `json:"name"`
	PublicRepos int     `json:"public_repos"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
}

type githubRepo struct {
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	StargazersCount int     `json:"stargazers_count"`
	Language        *string `json:"language"`
	UpdatedAt       string  `json:"updated_at"`
}

type githubEvent struct {
	Type string `json:"type"`
}

// Fetch retrieves a user's profile, recent repositories and public
// events, and normalizes them into a GitHubSnapshot. The profile fetch
// is required: a transport failure or non-2xx status fails the whole
// call. Repository and event fetches degrade to empty data instead.
func (c *GitHubClient) Fetch(ctx context.Context, username string) (*GitHubSnapshot, error) {
	if username == "" {
		return nil, fmt.Errorf("GitHub %w", ErrUsernameRequired)
	}

	var user githubUser
	if err := c.get(ctx, fmt.Sprintf("%s/users/%s", c.baseURL, username), &user); err != nil {
		return nil, err
	}

	// Best-effort fetches: failures here leave the portion empty.
	var repos []githubRepo
	reposURL := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=10", c.baseURL, username)
	if err := c.get(ctx, reposURL, &repos); err != nil {
		repos = nil
	}

	var events []githubEvent
	eventsURL := fmt.Sprintf("%s/users/%s/events/public?per_page=10", c.baseURL, username)
	if err := c.get(ctx, eventsURL, &events); err != nil {
		events = nil
	}

	snapshot := &GitHubSnapshot{
		Username:    username,
		Name:        stringOr(user.Name, "N/A"),
		PublicRepos: user.PublicRepos,
		Followers:   user.Followers,
		Following:   user.Following,
		RecentRepos: []RepoSummary{},
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}

	for _, repo := range repos {
		snapshot.TotalStars += repo.StargazersCount
	}
	for i, repo := range repos {
		if i == 5 {
			break
		}
		snapshot.RecentRepos = append(snapshot.RecentRepos, RepoSummary{
			Name:        repo.Name,
			Description: stringOr(repo.Description, "No description"),
			Stars:       repo.StargazersCount,
			Language:    stringOr(repo.Language, "N/A"),
			UpdatedAt:   repo.UpdatedAt,
		})
	}
	for _, event := range events {
		if event.Type == "PushEvent" {
			snapshot.RecentCommits++
		}
	}

	return snapshot, nil
}

// get issues an authenticated GET and decodes a 2xx JSON response.
// Non-2xx statuses become an *APIError.
func (c *GitHubClient) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Platform: "GitHub", Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func stringOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
