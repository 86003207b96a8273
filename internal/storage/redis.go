package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces slot keys inside a shared redis database.
const redisKeyPrefix = "hirelink:"

// RedisSlot stores blobs as plain redis string values with no expiry.
type RedisSlot struct {
	client *redis.Client
}

// NewRedisSlot connects to redis at addr and verifies the connection.
func NewRedisSlot(ctx context.Context, addr, password string) (*RedisSlot, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}

	return &RedisSlot{client: client}, nil
}

// Get implements Slot
func (r *RedisSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get slot %s: %w", key, err)
	}
	if len(b) == 0 {
		return nil, false, nil
	}
	return b, true, nil
}

// Set implements Slot
func (r *RedisSlot) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set slot %s: %w", key, err)
	}
	return nil
}

// Delete implements Slot
func (r *RedisSlot) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}

// Close implements Slot
func (r *RedisSlot) Close() error {
	return r.client.Close()
}
