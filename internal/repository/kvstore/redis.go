package kvstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key prefix; one hash per namespace
	namespaceKeyPrefix = "kv:"
)

// RedisStore maps a namespace to a Redis hash, so Clear is a single DEL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisClient parses the URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	v, err := s.client.HGet(ctx, namespaceKeyPrefix+namespace, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, namespace, key, value string) error {
	return s.client.HSet(ctx, namespaceKeyPrefix+namespace, key, value).Err()
}

func (s *RedisStore) Delete(ctx context.Context, namespace, key string) error {
	return s.client.HDel(ctx, namespaceKeyPrefix+namespace, key).Err()
}

func (s *RedisStore) Keys(ctx context.Context, namespace string) ([]string, error) {
	keys, err := s.client.HKeys(ctx, namespaceKeyPrefix+namespace).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *RedisStore) Clear(ctx context.Context, namespace string) error {
	return s.client.Del(ctx, namespaceKeyPrefix+namespace).Err()
}
