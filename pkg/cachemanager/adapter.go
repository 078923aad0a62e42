package cachemanager

import (
	"context"
	"time"
)

//go:generate mockgen -source=adapter.go -destination=mock_cache.go -package=cachemanager

// Cache is the shared counter/cache service handed to every task execution.
// Workers share state through it, never through process memory.
type Cache interface {
	Key(params ...string) Key
	IncrBy(ctx context.Context, key Key, delta int64) (int64, error)
	Get(ctx context.Context, key Key) (int64, error)
	GetDefaultTTL() time.Duration
}
