package user

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store with the same uniqueness semantics as the
// postgres implementation.
type memStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[uuid.UUID]*User)}
}

func (m *memStore) ByID(_ context.Context, id uuid.UUID) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *memStore) ByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) ByUsername(_ context.Context, username string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrEmailTaken
		}
		if strings.EqualFold(existing.Username, u.Username) {
			return ErrUsernameTaken
		}
	}

	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func TestRegister_OK(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemStore())
	ctx := context.Background()

	id, err := svc.Register(ctx, "A@B.com", "bob", "password1")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	u, err := svc.ByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", u.Email)
	require.Equal(t, "bob", u.Username)
	require.Equal(t, "bob", u.DisplayName)
	require.NoError(t, VerifyPassword(u.PasswordHash, "password1"))
}

func TestRegister_EmailTakenWinsOverUsername(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "bob", "password1")
	require.NoError(t, err)

	// Same email, different username: email conflict wins.
	_, err = svc.Register(ctx, "a@b.com", "carol", "password2")
	require.ErrorIs(t, err, ErrEmailTaken)

	// Different email, same username.
	_, err = svc.Register(ctx, "c@d.com", "bob", "password2")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_WeakPassword(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemStore())

	_, err := svc.Register(context.Background(), "a@b.com", "bob", "short")
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestAuthenticate_OK(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemStore())
	ctx := context.Background()

	id, err := svc.Register(ctx, "a@b.com", "bob", "password1")
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "a@b.com", "password1")
	require.NoError(t, err)
	require.Equal(t, id, u.ID)

	// Email lookup is case-insensitive.
	u, err = svc.Authenticate(ctx, "A@B.COM", "password1")
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
}

func TestAuthenticate_Invalid(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "bob", "password1")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "a@b.com", "wrongpass")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@b.com", "password1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_OAuthOnlyAccountRejected(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemStore())
	ctx := context.Background()

	_, err := svc.ResolveOAuth(ctx, "a@b.com", "bob")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "a@b.com", "anything")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveOAuth_CreatesThenReuses(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	created, err := svc.ResolveOAuth(ctx, "a@b.com", "bob")
	require.NoError(t, err)
	require.Equal(t, "bob", created.Username)
	require.Equal(t, "bob", created.DisplayName)
	require.Empty(t, created.PasswordHash)

	// Second callback with the same email reuses the identity.
	again, err := svc.ResolveOAuth(ctx, "a@b.com", "bob")
	require.NoError(t, err)
	require.Equal(t, created.ID, again.ID)

	require.Len(t, store.users, 1)
}

func TestResolveOAuth_ExistingLocalAccount(t *testing.T) {
	t.Parallel()

	svc := NewService(newMemStore())
	ctx := context.Background()

	id, err := svc.Register(ctx, "a@b.com", "bob", "password1")
	require.NoError(t, err)

	u, err := svc.ResolveOAuth(ctx, "A@B.com", "bob-42")
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
	require.Equal(t, "bob", u.Username)
}
