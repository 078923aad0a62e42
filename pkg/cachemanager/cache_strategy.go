package cachemanager

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
)

var ErrKeyNotFound = errors.New("cache key not found")

// Key represents a cache key as a string.
type Key string

func (k Key) String() string {
	return string(k)
}

// Strategy implements Cache on top of a Redis client.
type Strategy struct {
	appPrefix  string
	defaultTTL time.Duration
	client     redis.Cmdable
}

var _ Cache = (*Strategy)(nil)

func NewStrategy(appPrefix string, client redis.Cmdable, defaultTTL time.Duration) *Strategy {
	return &Strategy{appPrefix: appPrefix, client: client, defaultTTL: defaultTTL}
}

// Key joins the app prefix and params with ":".
func (s Strategy) Key(params ...string) Key {
	if s.appPrefix != "" {
		params = append([]string{s.appPrefix}, params...)
	}
	return Key(strings.Join(params, ":"))
}

func (s Strategy) GetDefaultTTL() time.Duration {
	return s.defaultTTL
}

// IncrBy atomically adds delta to the counter stored at key and returns the new value.
// The key expiry is refreshed to the default TTL when one is configured.
func (s Strategy) IncrBy(ctx context.Context, key Key, delta int64) (int64, error) {
	val, err := s.client.IncrBy(ctx, key.String(), delta).Result()
	if err != nil {
		return 0, fmt.Errorf("error incrementing key %s: %w", key.String(), err)
	}

	if s.defaultTTL > 0 {
		if err := s.client.Expire(ctx, key.String(), s.defaultTTL).Err(); err != nil {
			return val, fmt.Errorf("error setting ttl for key %s: %w", key.String(), err)
		}
	}

	return val, nil
}

func (s Strategy) Get(ctx context.Context, key Key) (int64, error) {
	val, err := s.client.Get(ctx, key.String()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("get %s: %w", key.String(), ErrKeyNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("error getting value for key %s: %w", key.String(), err)
	}

	return val, nil
}
