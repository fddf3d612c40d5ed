package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func setupTestMongo(t *testing.T) *MongoStorage {
	t.Helper()
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	return NewMongoStorage(db)
}

func TestMongoStorage_SetAndGet(t *testing.T) {
	sut := setupTestMongo(t)
	ctx := context.Background()

	require.NoError(t, sut.Set(ctx, "cart-storage", `[{"product_id":1}]`))

	val, err := sut.Get(ctx, "cart-storage")
	require.NoError(t, err)
	assert.Equal(t, `[{"product_id":1}]`, val)
}

func TestMongoStorage_SetOverwrites(t *testing.T) {
	sut := setupTestMongo(t)
	ctx := context.Background()

	require.NoError(t, sut.Set(ctx, "cart-storage", "old"))
	require.NoError(t, sut.Set(ctx, "cart-storage", "new"))

	val, err := sut.Get(ctx, "cart-storage")
	require.NoError(t, err)
	assert.Equal(t, "new", val)
}

func TestMongoStorage_GetMissingKey(t *testing.T) {
	sut := setupTestMongo(t)

	_, err := sut.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMongoStorage_Remove(t *testing.T) {
	sut := setupTestMongo(t)
	ctx := context.Background()

	require.NoError(t, sut.Set(ctx, "cart-storage", "value"))
	require.NoError(t, sut.Remove(ctx, "cart-storage"))

	_, err := sut.Get(ctx, "cart-storage")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMongoStorage_RemoveMissingKeyIsNoOp(t *testing.T) {
	sut := setupTestMongo(t)

	assert.NoError(t, sut.Remove(context.Background(), "nonexistent"))
}

func TestMongoStorage_ContextCancellation(t *testing.T) {
	sut := setupTestMongo(t)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Nanosecond)
	defer cancel()

	time.Sleep(10 * time.Millisecond)

	_, err := sut.Get(ctx, "cart-storage")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "context")
}
