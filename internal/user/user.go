// Package user defines the account domain types for devtrack.
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Validation errors.
var (
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrUsernameTooLong  = errors.New("username must not exceed 80 characters")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

// Domain errors.
var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
	ErrNotFound      = errors.New("user not found")
)

// User represents a registered account that owns tasks and platform records.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// New creates a User with a bcrypt-hashed password.
// username must be 3-80 characters, email must contain a domain part,
// password must be at least 6 characters.
func New(username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if len(username) < 3 {
		return nil, ErrUsernameTooShort
	}
	if len(username) > 80 {
		return nil, ErrUsernameTooLong
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// CheckPassword returns true if the password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return ErrInvalidEmail
	}
	if !strings.Contains(email[at+1:], ".") {
		return ErrInvalidEmail
	}
	return nil
}

// Repository defines the storage interface for users.
type Repository interface {
	// CreateUser adds a new user. Returns ErrUsernameTaken or
	// ErrEmailTaken on uniqueness violations.
	CreateUser(ctx context.Context, u *User) error

	// GetUser retrieves a user by ID. Returns nil when not found.
	GetUser(ctx context.Context, id int64) (*User, error)

	// GetUserByEmail retrieves a user by email. Returns nil when not found.
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}
