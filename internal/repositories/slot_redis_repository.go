package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"kawther/internal/config"
)

// RedisSlotStore is a Redis implementation of SlotStore.
type RedisSlotStore struct {
	client *redis.Client
}

// NewRedisSlotStore connects to Redis with the given settings.
func NewRedisSlotStore(cfg config.RedisConfig) *RedisSlotStore {
	return NewRedisSlotStoreFromClient(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}))
}

// NewRedisSlotStoreFromClient wraps an existing client.
func NewRedisSlotStoreFromClient(client *redis.Client) *RedisSlotStore {
	return &RedisSlotStore{client: client}
}

func (r *RedisSlotStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Get reads the raw snapshot stored under key.
func (r *RedisSlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("key %s: %w", key, ErrSlotNotFound)
		}
		return nil, fmt.Errorf("failed to get slot %s: %w", key, err)
	}
	return data, nil
}

// PutAll writes every entry in one MULTI/EXEC block.
func (r *RedisSlotStore) PutAll(ctx context.Context, entries map[string][]byte) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, data := range entries {
			pipe.Set(ctx, key, data, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to persist slots: %w", err)
	}
	return nil
}

func (r *RedisSlotStore) Close() error {
	return r.client.Close()
}
