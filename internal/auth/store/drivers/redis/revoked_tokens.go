// Package redis provides a revocation blacklist backed by Redis. Entries
// carry a TTL equal to the token's remaining lifetime, so Redis expires
// them on its own and PurgeExpired has no work to do.
package redis

import (
	"context"
	"time"

	"github.com/dev-gonzo/system-rpg-backend-sub000/internal/auth/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "revoked:"

type RevokedTokens struct {
	client *redis.Client
}

func NewRevokedTokens(client *redis.Client) *RevokedTokens {
	return &RevokedTokens{client: client}
}

func (r *RevokedTokens) Revoke(ctx context.Context, t domain.RevokedToken) error {
	ttl := time.Until(t.ExpiresAt)
	if ttl <= 0 {
		// Already expired, nothing to blacklist.
		return nil
	}
	return r.client.Set(ctx, keyPrefix+t.Fingerprint, t.Reason, ttl).Err()
}

func (r *RevokedTokens) IsRevoked(ctx context.Context, fingerprint string) (bool, error) {
	n, err := r.client.Exists(ctx, keyPrefix+fingerprint).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// PurgeExpired is a no-op: key TTLs already handle expiry.
func (r *RevokedTokens) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (r *RevokedTokens) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
