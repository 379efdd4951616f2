package kvstore

import (
	"context"
	"fmt"

	"dashboard-client/config"
	"dashboard-client/internal/domain"
	"dashboard-client/pkg/storage"
)

// Open builds the store selected by STORE_DRIVER. The returned func releases
// any connections and is never nil.
func Open(ctx context.Context, cfg *config.Config) (domain.KeyValueStore, func(), error) {
	noop := func() {}

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		return NewMemoryStore(), noop, nil

	case config.StoreDriverFile:
		s, err := NewFileStore(cfg.StorePath)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case config.StoreDriverRedis:
		client, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return NewRedisStore(client), func() { client.Close() }, nil

	case config.StoreDriverPostgres:
		pool, err := NewPgxPool(ctx, PoolConfig{
			DSN:             cfg.DBUrl,
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		})
		if err != nil {
			return nil, noop, err
		}
		s, err := NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return s, pool.Close, nil

	case config.StoreDriverR2:
		s, err := storage.NewR2Storage(ctx, cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2AccessKeySecret, cfg.R2BucketName, cfg.R2Endpoint, cfg.R2Timeout)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	}
	return nil, noop, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
