// Package cache memoizes scores in Redis so an unchanged resume is not
// re-scored or re-classified.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spigell/resume-scorer/internal/scoring"
)

const DefaultTTL = 24 * time.Hour

type Config struct {
	Address  string        `mapstructure:"address" validate:"required,hostname_port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db" validate:"gte=0"`
	TTL      time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

// RedisStore keeps JSON encoded scores under the engine's cache keys.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// Open connects to Redis and checks the connection.
func Open(ctx context.Context, cfg Config) (*RedisStore, func() error, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.Address, err)
	}
	return NewRedisStore(client, cfg.TTL), client.Close, nil
}

// NewRedisStore wraps an existing client. A non-positive ttl means DefaultTTL.
func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*scoring.ResumeScore, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}

	var score scoring.ResumeScore
	if err := json.Unmarshal(data, &score); err != nil {
		return nil, false, fmt.Errorf("decode cached score %s: %w", key, err)
	}
	return &score, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, score *scoring.ResumeScore) error {
	if score == nil {
		return errors.New("nil score")
	}
	data, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("encode score: %w", err)
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
