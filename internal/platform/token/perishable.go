// Package token provides the Redis-backed perishable token store used
// for activation and password-reset links.
package token

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pkgdir/internal/feature/account/usecase"
)

// PerishableStore implements usecase.TokenStore on Redis. Tokens are
// single-use: Consume removes the key atomically, so a second redeem
// of the same link fails with usecase.ErrTokenInvalid. Redis TTL
// handles expiry, so an expired link fails the same way.
type PerishableStore struct {
	client *redis.Client
	prefix string
}

// Compile-time check that PerishableStore implements TokenStore.
var _ usecase.TokenStore = (*PerishableStore)(nil)

// NewPerishableStore creates a new PerishableStore instance.
func NewPerishableStore(client *redis.Client, prefix string) *PerishableStore {
	return &PerishableStore{client: client, prefix: prefix}
}

// tokenKey returns the Redis key for a token of the given purpose.
func (s *PerishableStore) tokenKey(purpose, token string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, purpose, token)
}

// Issue creates a fresh token bound to a user and purpose. Issuing a
// new token does not revoke earlier ones; each expires on its own TTL.
func (s *PerishableStore) Issue(ctx context.Context, purpose string, userID uint, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	key := s.tokenKey(purpose, token)
	if err := s.client.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// Consume redeems a token and returns the bound user id. The key is
// deleted in the same round trip, so concurrent redeems resolve to one
// winner.
func (s *PerishableStore) Consume(ctx context.Context, purpose, token string) (uint, error) {
	val, err := s.client.GetDel(ctx, s.tokenKey(purpose, token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, usecase.ErrTokenInvalid
		}
		return 0, err
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt token value: %w", err)
	}
	return uint(id), nil
}
