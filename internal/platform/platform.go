// Package platform fetches statistics from external coding platforms
// and normalizes them into stored per-user records.
package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Supported platform names for synchronization. Task labels are
// free-form; this closed set only gates the sync path.
const (
	GitHub   = "github"
	LeetCode = "leetcode"
)

// Input errors, reported before any network or store call.
var (
	ErrUsernameRequired    = errors.New("username not provided")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// ErrUserNotFound is returned when the upstream API has no matching user.
var ErrUserNotFound = errors.New("user not found or API error")

// APIError carries a non-2xx status from a required upstream fetch.
type APIError struct {
	Platform string
	Status   int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error: %d", e.Platform, e.Status)
}

// Record is the last successfully normalized snapshot for a
// (user, platform) pair. Data holds the platform-specific schema.
type Record struct {
	UserID      int64
	Platform    string
	Data        json.RawMessage
	LastUpdated time.Time
}

// RecordStore defines the storage interface for platform records.
type RecordStore interface {
	// GetPlatformRecord returns the record for (user, platform),
	// nil when none exists.
	GetPlatformRecord(ctx context.Context, userID int64, platform string) (*Record, error)

	// ListPlatformRecords returns all of a user's records.
	ListPlatformRecords(ctx context.Context, userID int64) ([]*Record, error)

	// UpsertPlatformRecord writes the record for (user, platform),
	// creating it on first sync and replacing it afterwards.
	// The write is transactional: either the full record with its
	// refreshed timestamp becomes visible, or nothing changes.
	UpsertPlatformRecord(ctx context.Context, userID int64, platform string, data []byte, updatedAt time.Time) error
}

// Syncer orchestrates platform synchronization: it invokes the matching
// normalizer and upserts the resulting record.
type Syncer struct {
	store    RecordStore
	github   *GitHubClient
	leetcode *LeetCodeClient
	now      func() time.Time
}

// NewSyncer creates a Syncer over the given store and platform clients.
func NewSyncer(store RecordStore, github *GitHubClient, leetcode *LeetCodeClient) *Syncer {
	return &Syncer{
		store:    store,
		github:   github,
		leetcode: leetcode,
		now:      time.Now,
	}
}

// Sync fetches and normalizes statistics for the named platform and
// stores them for the user. The returned payload is the stored JSON.
// On any fetch failure nothing is written and the error is returned
// unchanged; an unknown platform is rejected before any network call.
func (s *Syncer) Sync(ctx context.Context, userID int64, platform, username string) (json.RawMessage, error) {
	var (
		snapshot any
		err      error
	)

	switch platform {
	case GitHub:
		snapshot, err = s.github.Fetch(ctx, username)
	case LeetCode:
		snapshot, err = s.leetcode.Fetch(ctx, username)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("encoding %s snapshot: %w", platform, err)
	}

	if err := s.store.UpsertPlatformRecord(ctx, userID, platform, data, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("storing %s snapshot: %w", platform, err)
	}

	return data, nil
}
