package insights

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/IsaacDSC/miracle/pkg/intertime"
	"github.com/redis/go-redis/v9"
)

const (
	insightsPrefix = "miracle:insights"
	separator      = ":"
	emaAlpha       = 0.2
)

// Consumed describes one finished task execution.
type Consumed struct {
	TaskName string
	Queue    string
	ACK      bool
	Elapsed  time.Duration
}

// TaskMetric aggregates every execution of a task name.
type TaskMetric struct {
	TaskName    string             `json:"task_name"`
	Queue       string             `json:"queue"`
	Success     int64              `json:"success"`
	Failure     int64              `json:"failure"`
	LastLatency intertime.Duration `json:"last_latency"`
	AvgLatency  intertime.Duration `json:"avg_latency"`
}

type Store struct {
	cache *redis.Client
}

func NewStore(cache *redis.Client) *Store {
	return &Store{cache: cache}
}

func (s *Store) key(values ...string) string {
	return strings.Join(append([]string{insightsPrefix}, values...), separator)
}

func (s *Store) groupKey() string {
	return s.key("tasks")
}

// Consumed records one execution: success/failure counters, last latency and
// an exponential moving average of the latency.
func (s *Store) Consumed(ctx context.Context, input Consumed) error {
	key := s.key("task", input.TaskName)
	field := "failure"
	if input.ACK {
		field = "success"
	}

	currentMs := float64(input.Elapsed.Milliseconds())
	newAvg := currentMs

	existingAvg, err := s.cache.HGet(ctx, key, "avg_latency_ms").Float64()
	switch {
	case err == nil:
		newAvg = emaAlpha*currentMs + (1-emaAlpha)*existingAvg
	case !errors.Is(err, redis.Nil):
		return fmt.Errorf("failed to read latency of %s: %w", input.TaskName, err)
	}

	_, err = s.cache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, field, 1)
		pipe.HSet(ctx, key, "queue", input.Queue, "last_latency_ms", currentMs, "avg_latency_ms", newAvg)
		pipe.SAdd(ctx, s.groupKey(), input.TaskName)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save consumed task: %w", err)
	}

	return nil
}

func (s *Store) GetAll(ctx context.Context) ([]TaskMetric, error) {
	names, err := s.cache.SMembers(ctx, s.groupKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get insights keys: %w", err)
	}
	sort.Strings(names)

	output := make([]TaskMetric, 0, len(names))
	for _, name := range names {
		values, err := s.cache.HGetAll(ctx, s.key("task", name)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get insights of task %s: %w", name, err)
		}

		output = append(output, TaskMetric{
			TaskName:    name,
			Queue:       values["queue"],
			Success:     parseInt(values["success"]),
			Failure:     parseInt(values["failure"]),
			LastLatency: intertime.FromMilliseconds(parseFloat(values["last_latency_ms"])),
			AvgLatency:  intertime.FromMilliseconds(parseFloat(values["avg_latency_ms"])),
		})
	}

	return output, nil
}

func parseInt(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
