package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/lxup/42Cursus-ft-transcendence/internal/db"
)

// PostgresStore is the canonical Store backed by the users table.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, email, username, display_name, COALESCE(password_hash, ''), created_at, updated_at`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.DisplayName,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &u, nil
}

func (s *PostgresStore) ByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)

	return scanUser(row)
}

func (s *PostgresStore) ByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)

	return scanUser(row)
}

func (s *PostgresStore) ByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`, username)

	return scanUser(row)
}

// Create inserts the user. Unique violations are mapped by constraint name
// so concurrent registrations surface as the taken-key errors rather than
// opaque driver failures.
func (s *PostgresStore) Create(ctx context.Context, u *User) error {
	var hash any
	if u.PasswordHash != "" {
		hash = u.PasswordHash
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, username, display_name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		u.ID,
		u.Email,
		u.Username,
		u.DisplayName,
		hash,
		u.CreatedAt,
		u.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			switch pqErr.Constraint {
			case "users_email_lower_unique":
				return ErrEmailTaken
			case "users_username_lower_unique":
				return ErrUsernameTaken
			}
		}

		return fmt.Errorf("user: create: %w", err)
	}

	return nil
}
