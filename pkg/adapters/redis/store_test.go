package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/indicator/pkg/adapters/redis"
	"github.com/aretw0/indicator/pkg/domain"
	contract "github.com/aretw0/indicator/pkg/ports/tests"
)

func newStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newStore(t)
	contract.DocumentStoreContractTest(t, store)
}

func TestRedisStore_SourceContract(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, &domain.Document{ID: "cpu", Traces: []map[string]any{{"value": 42}}}))
	require.NoError(t, store.Save(ctx, &domain.Document{ID: "health", Traces: []map[string]any{{"value": 1}, {"value": 2}}}))

	contract.DocumentSourceContractTest(t, store, map[string]int{"cpu": 1, "health": 2})
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	store, mr := newStore(t, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Document{ID: "short", Traces: []map[string]any{{}}}))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "short")

	// Expire the key in miniredis.
	mr.FastForward(2 * time.Second)

	_, err = store.Get(ctx, "short")
	assert.ErrorIs(t, err, domain.ErrTraceNotFound)

	// The index is pruned against the wall clock.
	time.Sleep(1200 * time.Millisecond)

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisStore_Prefix(t *testing.T) {
	store, mr := newStore(t, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Document{ID: "board", Traces: []map[string]any{{}}}))

	assert.True(t, mr.Exists("custom:app:board"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")
	require.NoError(t, store.Ping(ctx))
}

func TestRedisStore_CorruptValue(t *testing.T) {
	store, mr := newStore(t)
	require.NoError(t, mr.Set(redis.DefaultPrefix+"bad", "{not json"))

	_, err := store.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTraceNotFound)
}
