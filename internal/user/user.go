package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound - no user matches the lookup key.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken - the email is already registered to another user.
	ErrEmailTaken = errors.New("email already exists")

	// ErrUsernameTaken - the username is already registered to another user.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials - email/password pair does not match a stored
	// account. Deliberately covers both unknown users and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is a stored identity. PasswordHash is empty for accounts created
// through the OAuth callback; such accounts cannot log in locally.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Store is the externally-owned user record store. Implementations must map
// uniqueness violations onto ErrEmailTaken / ErrUsernameTaken.
type Store interface {
	ByID(ctx context.Context, id uuid.UUID) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	ByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, u *User) error
}
