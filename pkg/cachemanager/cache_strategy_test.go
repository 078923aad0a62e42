package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/IsaacDSC/miracle/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	testCases := []struct {
		name     string
		prefix   string
		params   []string
		expected Key
	}{
		{
			name:     "single parameter",
			prefix:   "miracle",
			params:   []string{"foo"},
			expected: Key("miracle:foo"),
		},
		{
			name:     "multiple parameters",
			prefix:   "miracle",
			params:   []string{"user", "123", "urls"},
			expected: Key("miracle:user:123:urls"),
		},
		{
			name:     "without prefix",
			params:   []string{"foo"},
			expected: Key("foo"),
		},
		{
			name:     "empty parameters",
			prefix:   "miracle",
			params:   []string{},
			expected: Key("miracle"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			strategy := Strategy{appPrefix: tc.prefix}
			assert.Equal(t, tc.expected, strategy.Key(tc.params...))
		})
	}
}

func TestGetDefaultTTL(t *testing.T) {
	strategy := NewStrategy("miracle", nil, 24*time.Hour)
	assert.Equal(t, 24*time.Hour, strategy.GetDefaultTTL())
}

func TestIncrByAndGet(t *testing.T) {
	ctx := context.Background()
	client := testsupport.Redis(t)
	strategy := NewStrategy("miracle", client, time.Minute)

	key := strategy.Key("foo")

	t.Run("missing key", func(t *testing.T) {
		_, err := strategy.Get(ctx, key)
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("increments accumulate", func(t *testing.T) {
		v, err := strategy.IncrBy(ctx, key, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), v)

		v, err = strategy.IncrBy(ctx, key, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(4), v)

		got, err := strategy.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, int64(4), got)
	})

	t.Run("ttl applied", func(t *testing.T) {
		ttl, err := client.TTL(ctx, key.String()).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})
}
