package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisStorage instance
func setupTestRedis(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisStorage(client), mr
}

func TestRedisStorage_SetAndGet(t *testing.T) {
	sut, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, sut.Set(ctx, "cart-storage", `[{"product_id":1}]`))

	val, err := sut.Get(ctx, "cart-storage")
	require.NoError(t, err)
	assert.Equal(t, `[{"product_id":1}]`, val)
}

func TestRedisStorage_GetMissingKey(t *testing.T) {
	sut, _ := setupTestRedis(t)

	_, err := sut.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStorage_KeysArePrefixed(t *testing.T) {
	sut, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, sut.Set(ctx, "cart-storage", "value"))

	got, err := mr.Get("storefront:cart-storage")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestRedisStorage_Remove(t *testing.T) {
	sut, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, sut.Set(ctx, "cart-storage", "value"))
	require.NoError(t, sut.Remove(ctx, "cart-storage"))

	_, err := sut.Get(ctx, "cart-storage")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStorage_ValuesDoNotExpire(t *testing.T) {
	sut, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, sut.Set(ctx, "cart-storage", "value"))

	// The cart record is durable state, not a cache entry
	assert.Zero(t, mr.TTL("storefront:cart-storage"))
}
