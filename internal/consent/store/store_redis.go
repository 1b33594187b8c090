package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cookieconsent/pkg/platform/sentinel"
)

// RedisStore keeps each namespace in one Redis hash. Command failures other
// than a missing field are reported as sentinel.ErrUnavailable. When ttl is positive the
// hash expiry is refreshed on every write, so a client's items age out together.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisStore constructs a Redis backend. A zero ttl keeps items forever.
func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, namespace, key string) (string, error) {
	value, err := s.client.HGet(ctx, namespace, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("redis get %s: %w: %w", key, sentinel.ErrUnavailable, err)
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, namespace, key, value string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, namespace, key, value)
		if s.ttl > 0 {
			pipe.Expire(ctx, namespace, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w: %w", key, sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, namespace, key string) error {
	if err := s.client.HDel(ctx, namespace, key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w: %w", key, sentinel.ErrUnavailable, err)
	}
	return nil
}
