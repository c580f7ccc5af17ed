package token

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore tracks blacklisted refresh tokens by their JWT ID.
// Revoke is idempotent; IsRevoked is consulted on every refresh path so a
// logged-out token can never mint another access token.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type RedisRevocationStore struct {
	client *redis.Client
	prefix string
}

// NewRedisRevocationStore creates a redis-backed blacklist.
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{
		client: client,
		prefix: "revoked:",
	}
}

func (r *RedisRevocationStore) key(jti string) string {
	return r.prefix + jti
}

// Revoke records the token as unusable until its natural expiry. The entry
// carries a TTL equal to the token's remaining lifetime; once the token has
// expired on its own the blacklist entry is dead weight and redis drops it.
func (r *RedisRevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl < time.Second {
		ttl = time.Second
	}

	return r.client.Set(ctx, r.key(jti), 1, ttl).Err()
}

func (r *RedisRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(jti)).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}
