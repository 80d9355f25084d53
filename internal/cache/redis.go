package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "livecounter:resp:"

// Redis is a shared Store. Errors are logged and treated as misses so the
// proxy keeps working when redis is unavailable.
type Redis struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedis connects to redisURL and pings it.
func NewRedis(ctx context.Context, redisURL string, log zerolog.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Redis{rdb: rdb, log: log}, nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(rdb *redis.Client, log zerolog.Logger) *Redis {
	return &Redis{rdb: rdb, log: log}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.log.Warn().Err(err).Msg("redis get failed")
		return nil, false
	}
	return b, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.rdb.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		r.log.Warn().Err(err).Msg("redis set failed")
	}
}

// Ping reports whether redis is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Close shuts down the redis connection.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
