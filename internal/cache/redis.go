package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/chirpnet/chirp/pkg/config"
	"github.com/chirpnet/chirp/pkg/logging"
)

// RedisStore backs the list cache with a shared Redis instance. Keys
// are namespaced so the instance can be shared with other services.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisStore creates a new Redis-backed cache store
func NewRedisStore(cfg *config.RedisConfig) (*RedisStore, error) {
	if !cfg.Enabled {
		logging.GetLogger().Info("Redis cache disabled")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetLogger().Info("Redis connection established")

	return &RedisStore{
		client: client,
		ctx:    context.Background(),
	}, nil
}

// Get retrieves a value from cache
func (s *RedisStore) Get(key string) ([]byte, error) {
	if s == nil || s.client == nil {
		return nil, ErrCacheDisabled
	}
	val, err := s.client.Get(s.ctx, namespaceKey(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set sets a value in cache with TTL
func (s *RedisStore) Set(key string, value []byte, ttl time.Duration) error {
	if s == nil || s.client == nil {
		return ErrCacheDisabled
	}
	return s.client.Set(s.ctx, namespaceKey(key), value, ttl).Err()
}

// Clear removes all namespaced keys
func (s *RedisStore) Clear() error {
	if s == nil || s.client == nil {
		return ErrCacheDisabled
	}
	iter := s.client.Scan(s.ctx, 0, namespaceKey("*"), 100).Iterator()
	for iter.Next(s.ctx) {
		if err := s.client.Del(s.ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Health checks Redis health
func (s *RedisStore) Health(ctx context.Context) error {
	if s == nil || s.client == nil {
		return ErrCacheDisabled
	}
	return s.client.Ping(ctx).Err()
}
