package userdata

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

const separator = ":"

// RedisStore keeps, per user, a hash url -> id and an upload list, and per URL
// a hash with its owner so deletions by id can clean up the owner's index.
type RedisStore struct {
	prefix string
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(prefix string, client *redis.Client) *RedisStore {
	return &RedisStore{prefix: prefix, client: client}
}

func (s *RedisStore) key(values ...string) string {
	return strings.Join(append([]string{s.prefix}, values...), separator)
}

func (s *RedisStore) userURLsKey(user string) string {
	return s.key("user", user, "urls")
}

func (s *RedisStore) userUploadsKey(user string) string {
	return s.key("user", user, "uploads")
}

func (s *RedisStore) urlKey(id int64) string {
	return s.key("url", strconv.FormatInt(id, 10))
}

func (s *RedisStore) AddURLs(ctx context.Context, user string, urls []string) ([]int64, error) {
	ids := make([]int64, 0, len(urls))

	for _, u := range urls {
		id, err := s.urlID(ctx, user, u)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// urlID returns the id of user's url, allocating one when it is new. The user
// index is claimed with HSETNX so concurrent adds of the same url agree on a
// single id; the url record is only written by the winner.
func (s *RedisStore) urlID(ctx context.Context, user, u string) (int64, error) {
	existing, err := s.client.HGet(ctx, s.userURLsKey(user), u).Int64()
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("failed to get url %s: %w", u, err)
	}

	id, err := s.client.Incr(ctx, s.key("url", "seq")).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate url id: %w", err)
	}

	claimed, err := s.client.HSetNX(ctx, s.userURLsKey(user), u, id).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to index url %s: %w", u, err)
	}

	if !claimed {
		winner, err := s.client.HGet(ctx, s.userURLsKey(user), u).Int64()
		if err != nil {
			return 0, fmt.Errorf("failed to get url %s: %w", u, err)
		}
		return winner, nil
	}

	if err := s.client.HSet(ctx, s.urlKey(id), "user", user, "url", u).Err(); err != nil {
		return 0, fmt.Errorf("failed to save url %s: %w", u, err)
	}

	return id, nil
}

func (s *RedisStore) UserURLIDs(ctx context.Context, user string) ([]int64, error) {
	values, err := s.client.HVals(ctx, s.userURLsKey(user)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get urls of user %s: %w", user, err)
	}

	ids := make([]int64, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid url id %q: %w", v, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (s *RedisStore) DeleteURLs(ctx context.Context, ids []int64) (int64, error) {
	var deleted int64

	for _, id := range ids {
		record, err := s.client.HGetAll(ctx, s.urlKey(id)).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to get url %d: %w", id, err)
		}
		if len(record) == 0 {
			continue
		}

		_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, s.urlKey(id))
			pipe.HDel(ctx, s.userURLsKey(record["user"]), record["url"])
			return nil
		})
		if err != nil {
			return deleted, fmt.Errorf("failed to delete url %d: %w", id, err)
		}

		deleted++
	}

	return deleted, nil
}

func (s *RedisStore) DeleteUser(ctx context.Context, user string) (bool, error) {
	n, err := s.client.Del(ctx, s.userUploadsKey(user)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete user %s: %w", user, err)
	}

	return n > 0, nil
}

func (s *RedisStore) SaveUpload(ctx context.Context, user string, payload []byte) error {
	if err := s.client.RPush(ctx, s.userUploadsKey(user), payload).Err(); err != nil {
		return fmt.Errorf("failed to save upload of user %s: %w", user, err)
	}

	return nil
}
