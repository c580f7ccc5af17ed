package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service implements account operations over a Store. It is stateless and
// safe for concurrent use as long as the store is.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates a local account. Email is checked before username, so a
// duplicate email wins regardless of the username supplied.
func (s *Service) Register(ctx context.Context, email, username, password string) (uuid.UUID, error) {
	const op = "user.Register"

	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.store.ByEmail(ctx, email); err == nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	} else if !errors.Is(err, ErrNotFound) {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.store.ByUsername(ctx, username); err == nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
	} else if !errors.Is(err, ErrNotFound) {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	u := &User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		DisplayName:  username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Create(ctx, u); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return u.ID, nil
}

// Authenticate verifies an email/password pair. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	const op = "user.Authenticate"

	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.store.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := VerifyPassword(u.PasswordHash, password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return u, nil
}

// ResolveOAuth maps a provider profile onto a local account: lookup by
// email, else create one with username and display name taken from the
// provider login and no local password. A concurrent first-login race
// resolves to whichever insert won.
func (s *Service) ResolveOAuth(ctx context.Context, email, login string) (*User, error) {
	const op = "user.ResolveOAuth"

	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.store.ByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	u = &User{
		ID:          uuid.New(),
		Email:       email,
		Username:    login,
		DisplayName: login,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.store.Create(ctx, u)
	if err == nil {
		return u, nil
	}

	if errors.Is(err, ErrEmailTaken) {
		if existing, lookupErr := s.store.ByEmail(ctx, email); lookupErr == nil {
			return existing, nil
		}
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}

// ByID loads a user by primary key.
func (s *Service) ByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.store.ByID(ctx, id)
}
