package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"kawther/internal/config"
	"kawther/internal/repositories"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *repositories.GORMSlotStore {
	t.Helper()
	// Each test gets its own named in-memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := repositories.OpenDatabase(config.DatabaseConfig{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	store := repositories.NewGORMSlotStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func openMiniredis(t *testing.T) *repositories.RedisSlotStore {
	t.Helper()
	server := miniredis.RunT(t)
	store := repositories.NewRedisSlotStoreFromClient(redis.NewClient(&redis.Options{Addr: server.Addr()}))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func slotStores(t *testing.T) map[string]repositories.SlotStore {
	return map[string]repositories.SlotStore{
		"memory": repositories.NewMemorySlotStore(),
		"gorm":   openSQLite(t),
		"redis":  openMiniredis(t),
	}
}

func TestSlotStore_GetMissing(t *testing.T) {
	for name, store := range slotStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(context.Background(), "kawther-cart")
			assert.ErrorIs(t, err, repositories.ErrSlotNotFound)
		})
	}
}

func TestSlotStore_PutAllThenGet(t *testing.T) {
	for name, store := range slotStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			err := store.PutAll(ctx, map[string][]byte{
				"kawther-cart":   []byte(`{"items":[]}`),
				"kawther-orders": []byte(`[]`),
			})
			require.NoError(t, err)

			data, err := store.Get(ctx, "kawther-cart")
			require.NoError(t, err)
			assert.JSONEq(t, `{"items":[]}`, string(data))

			// Overwrite is a full replacement.
			require.NoError(t, store.PutAll(ctx, map[string][]byte{"kawther-cart": []byte(`{"items":[{"product_id":"p"}]}`)}))
			data, err = store.Get(ctx, "kawther-cart")
			require.NoError(t, err)
			assert.JSONEq(t, `{"items":[{"product_id":"p"}]}`, string(data))

			data, err = store.Get(ctx, "kawther-orders")
			require.NoError(t, err)
			assert.Equal(t, "[]", string(data))
		})
	}
}

func TestMemorySlotStore_GetReturnsCopy(t *testing.T) {
	store := repositories.NewMemorySlotStore()
	store.Set("k", []byte("abc"))

	data, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	data[0] = 'z'

	again, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestOpenDatabase_UnsupportedDriver(t *testing.T) {
	_, err := repositories.OpenDatabase(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestRedisSlotStore_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	store := repositories.NewRedisSlotStoreFromClient(client)
	defer store.Close()

	_, err := store.Get(context.Background(), "kawther-cart")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrSlotNotFound)

	err = store.PutAll(context.Background(), map[string][]byte{"kawther-cart": []byte("{}")})
	assert.Error(t, err)
}

func TestRedisSlotStore_PutAllIsTransactional(t *testing.T) {
	server := miniredis.RunT(t)
	store := repositories.NewRedisSlotStoreFromClient(redis.NewClient(&redis.Options{Addr: server.Addr()}))
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.PutAll(ctx, map[string][]byte{
		"kawther-cart":     []byte(`{"items":[]}`),
		"kawther-products": []byte(`[]`),
	}))

	got, err := server.Get("kawther-cart")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, got)
	assert.True(t, server.Exists("kawther-products"))

	server.Del("kawther-cart")
	_, err = store.Get(ctx, "kawther-cart")
	assert.ErrorIs(t, err, repositories.ErrSlotNotFound)
}
