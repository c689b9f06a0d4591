// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/pmateos/devtrack/internal/platform"
	"github.com/pmateos/devtrack/internal/task"
	"github.com/pmateos/devtrack/internal/user"
)

// SQLite implements task.Repository, user.Repository and
// platform.RecordStore using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite store and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateUser adds a new user.
// Returns user.ErrUsernameTaken or user.ErrEmailTaken on duplicates.
func (s *SQLite) CreateUser(ctx context.Context, u *user.User) error {
	query := `INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "users.username") {
			return user.ErrUsernameTaken
		}
		if strings.Contains(err.Error(), "users.email") {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	u.ID = id

	return nil
}

// GetUser retrieves a user by ID.
func (s *SQLite) GetUser(ctx context.Context, id int64) (*user.User, error) {
	return s.getUser(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?`, id)
}

// GetUserByEmail retrieves a user by email.
func (s *SQLite) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.getUser(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?`, email)
}

func (s *SQLite) getUser(ctx context.Context, query string, arg any) (*user.User, error) {
	var (
		u         user.User
		createdAt string
	)

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	u.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	return &u, nil
}

// CreateTask adds a new task to the repository.
func (s *SQLite) CreateTask(ctx context.Context, t *task.Task) error {
	query := `
		INSERT INTO tasks (user_id, title, description, platform, status, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		t.UserID,
		t.Title,
		t.Description,
		t.Platform,
		t.Status,
		t.CreatedAt.Format(time.RFC3339),
		formatNullableTime(t.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	t.ID = id

	return nil
}

// GetTask retrieves a task by ID.
func (s *SQLite) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	query := `
		SELECT id, user_id, title, description, platform, status, created_at, completed_at
		FROM tasks
		WHERE id = ?
	`

	row := s.db.QueryRowContext(ctx, query, id)
	t, err := scanTask(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}

	return t, nil
}

// UpdateTask persists a task's mutable fields.
func (s *SQLite) UpdateTask(ctx context.Context, t *task.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, platform = ?, status = ?, completed_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		t.Platform,
		t.Status,
		formatNullableTime(t.CompletedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

// DeleteTask removes a task by ID.
func (s *SQLite) DeleteTask(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

// ListTasks returns a user's tasks matching the filter, newest first.
func (s *SQLite) ListTasks(ctx context.Context, userID int64, f task.Filter) ([]*task.Task, error) {
	query := `
		SELECT id, user_id, title, description, platform, status, created_at, completed_at
		FROM tasks
		WHERE ` + filterClause(f) + `
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, filterArgs(userID, f)...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return tasks, nil
}

// CountTasks returns the number of a user's tasks matching the filter.
func (s *SQLite) CountTasks(ctx context.Context, userID int64, f task.Filter) (int, error) {
	query := `SELECT COUNT(*) FROM tasks WHERE ` + filterClause(f)

	var count int
	if err := s.db.QueryRowContext(ctx, query, filterArgs(userID, f)...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}

	return count, nil
}

// ListPlatforms returns the distinct platform labels of a user's tasks.
func (s *SQLite) ListPlatforms(ctx context.Context, userID int64) ([]string, error) {
	query := `SELECT DISTINCT platform FROM tasks WHERE user_id = ? ORDER BY platform`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying platforms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var platforms []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning platform: %w", err)
		}
		platforms = append(platforms, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating platforms: %w", err)
	}

	return platforms, nil
}

// GetPlatformRecord returns the stored record for (user, platform).
func (s *SQLite) GetPlatformRecord(ctx context.Context, userID int64, platformName string) (*platform.Record, error) {
	query := `
		SELECT user_id, platform, data, last_updated
		FROM platform_records
		WHERE user_id = ? AND platform = ?
	`

	row := s.db.QueryRowContext(ctx, query, userID, platformName)
	r, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying platform record: %w", err)
	}

	return r, nil
}

// ListPlatformRecords returns all of a user's platform records.
func (s *SQLite) ListPlatformRecords(ctx context.Context, userID int64) ([]*platform.Record, error) {
	query := `
		SELECT user_id, platform, data, last_updated
		FROM platform_records
		WHERE user_id = ?
		ORDER BY platform
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying platform records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*platform.Record
	for rows.Next() {
		r, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning platform record: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating platform records: %w", err)
	}

	return records, nil
}

// UpsertPlatformRecord writes the record for (user, platform) inside a
// transaction so a partially written record is never visible. The last
// writer wins.
func (s *SQLite) UpsertPlatformRecord(ctx context.Context, userID int64, platformName string, data []byte, updatedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	updateQuery := `
		UPDATE platform_records
		SET data = ?, last_updated = ?
		WHERE user_id = ? AND platform = ?
	`
	result, err := tx.ExecContext(ctx, updateQuery,
		string(data),
		updatedAt.Format(time.RFC3339),
		userID,
		platformName,
	)
	if err != nil {
		return fmt.Errorf("updating platform record: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		insertQuery := `
			INSERT INTO platform_records (user_id, platform, data, last_updated)
			VALUES (?, ?, ?, ?)
		`
		if _, err := tx.ExecContext(ctx, insertQuery,
			userID,
			platformName,
			string(data),
			updatedAt.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("inserting platform record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// scanTask reads one task row through the given scan function.
func scanTask(scan func(...any) error) (*task.Task, error) {
	var (
		t           task.Task
		createdAt   string
		completedAt sql.NullString
	)

	err := scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Platform,
		&t.Status,
		&createdAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	if completedAt.Valid {
		parsed, err := parseTimestamp(completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing completed at: %w", err)
		}
		t.CompletedAt = &parsed
	}

	return &t, nil
}

// scanRecord reads one platform record row through the given scan function.
func scanRecord(scan func(...any) error) (*platform.Record, error) {
	var (
		r           platform.Record
		data        string
		lastUpdated string
	)

	err := scan(&r.UserID, &r.Platform, &data, &lastUpdated)
	if err != nil {
		return nil, err
	}

	r.Data = []byte(data)
	r.LastUpdated, err = parseTimestamp(lastUpdated)
	if err != nil {
		return nil, fmt.Errorf("parsing last updated: %w", err)
	}

	return &r, nil
}

// filterClause builds the WHERE clause for a task filter.
func filterClause(f task.Filter) string {
	clause := "user_id = ?"
	if f.Status != "" {
		clause += " AND status = ?"
	}
	if f.Platform != "" {
		clause += " AND platform = ?"
	}
	return clause
}

// filterArgs builds the arguments matching filterClause.
func filterArgs(userID int64, f task.Filter) []any {
	args := []any{userID}
	if f.Status != "" {
		args = append(args, f.Status)
	}
	if f.Platform != "" {
		args = append(args, f.Platform)
	}
	return args
}

func formatNullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

// parseTimestamp parses a timestamp string in the formats SQLite might return.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}
