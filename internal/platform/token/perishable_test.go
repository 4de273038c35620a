package token

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkgdir/internal/feature/account/usecase"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

func TestNewPerishableStore(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewPerishableStore(client, "perishable")

	assert.NotNil(t, store, "store is nil")
	assert.NotNil(t, store.client, "client is nil")
	assert.Equal(t, "perishable", store.prefix)
}

func TestPerishableStore_IssueAndConsume(t *testing.T) {
	t.Parallel()

	t.Run("round trip returns the bound user id", func(t *testing.T) {
		t.Parallel()

		client, _ := setupTestRedis(t)
		store := NewPerishableStore(client, "perishable")

		token, err := store.Issue(context.Background(), "activation", 42, time.Hour)
		require.NoError(t, err, "failed to issue token")
		assert.NotEmpty(t, token, "token is empty")

		userID, err := store.Consume(context.Background(), "activation", token)

		assert.NoError(t, err, "failed to consume token")
		assert.Equal(t, uint(42), userID, "user id does not match")
	})

	t.Run("tokens are single-use", func(t *testing.T) {
		t.Parallel()

		client, _ := setupTestRedis(t)
		store := NewPerishableStore(client, "perishable")

		token, err := store.Issue(context.Background(), "activation", 42, time.Hour)
		require.NoError(t, err)

		_, err = store.Consume(context.Background(), "activation", token)
		require.NoError(t, err, "first redeem should succeed")

		_, err = store.Consume(context.Background(), "activation", token)

		assert.ErrorIs(t, err, usecase.ErrTokenInvalid, "second redeem must fail")
	})

	t.Run("purpose must match", func(t *testing.T) {
		t.Parallel()

		client, _ := setupTestRedis(t)
		store := NewPerishableStore(client, "perishable")

		token, err := store.Issue(context.Background(), "activation", 42, time.Hour)
		require.NoError(t, err)

		_, err = store.Consume(context.Background(), "password_reset", token)
		assert.ErrorIs(t, err, usecase.ErrTokenInvalid, "token issued for another purpose must not redeem")

		// The activation key must survive the failed attempt.
		userID, err := store.Consume(context.Background(), "activation", token)
		assert.NoError(t, err, "original purpose should still redeem")
		assert.Equal(t, uint(42), userID)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()

		client, _ := setupTestRedis(t)
		store := NewPerishableStore(client, "perishable")

		_, err := store.Consume(context.Background(), "activation", "never-issued")

		assert.ErrorIs(t, err, usecase.ErrTokenInvalid, "should return ErrTokenInvalid")
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		client, mr := setupTestRedis(t)
		store := NewPerishableStore(client, "perishable")

		token, err := store.Issue(context.Background(), "activation", 42, time.Minute)
		require.NoError(t, err)

		mr.FastForward(2 * time.Minute)

		_, err = store.Consume(context.Background(), "activation", token)

		assert.ErrorIs(t, err, usecase.ErrTokenInvalid, "expired token must not redeem")
	})

	t.Run("issuing does not revoke earlier tokens", func(t *testing.T) {
		t.Parallel()

		client, _ := setupTestRedis(t)
		store := NewPerishableStore(client, "perishable")

		first, err := store.Issue(context.Background(), "password_reset", 7, time.Hour)
		require.NoError(t, err)
		second, err := store.Issue(context.Background(), "password_reset", 7, time.Hour)
		require.NoError(t, err)
		assert.NotEqual(t, first, second, "tokens must be unique")

		userID, err := store.Consume(context.Background(), "password_reset", first)
		assert.NoError(t, err, "earlier token should still redeem")
		assert.Equal(t, uint(7), userID)
	})
}

func TestPerishableStore_KeyGeneration(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	store := NewPerishableStore(client, "test-prefix")

	assert.Equal(t, "test-prefix:activation:abc", store.tokenKey("activation", "abc"))
}
