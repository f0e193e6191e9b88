package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ashureev/spiritual-guide/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	// TTL expires idle users; zero keeps records forever.
	TTL         time.Duration
	DialTimeout time.Duration
}

// RedisStore keeps one JSON value per user in Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}
	return NewRedisWithClient(client, cfg.KeyPrefix, cfg.TTL), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(userID string) string {
	return s.prefix + userID
}

// Read loads the user's value.
func (s *RedisStore) Read(ctx context.Context, userID string) (*domain.UserState, error) {
	if err := validateKey(userID); err != nil {
		return nil, err
	}
	val, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewUserState(time.Now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user memory: %w", err)
	}
	return decodeState(val, userID, "redis"), nil
}

// Write replaces the user's value.
func (s *RedisStore) Write(ctx context.Context, userID string, state *domain.UserState) error {
	if err := validateKey(userID); err != nil {
		return err
	}
	data, err := encodeState(state, false)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("set user memory: %w", err)
	}
	return nil
}

// Ping verifies Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Repository = (*RedisStore)(nil)
