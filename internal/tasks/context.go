package tasks

import (
	"context"

	"github.com/IsaacDSC/miracle/pkg/cachemanager"
	"github.com/hibiken/asynq"
)

// TaskContext is what a task body sees of its own invocation: identity
// metadata from the runtime and the shared cache handle.
type TaskContext struct {
	ID         string
	Name       string
	Queue      string
	RetryCount int
	MaxRetry   int
	Cache      cachemanager.Cache
}

// NewTaskContext reads the invocation metadata asynq stores in ctx. Outside a
// worker (tests, direct calls) the fields are left zero.
func NewTaskContext(ctx context.Context, name string, cache cachemanager.Cache) TaskContext {
	tc := TaskContext{Name: name, Cache: cache}

	if id, ok := asynq.GetTaskID(ctx); ok {
		tc.ID = id
	}
	if queue, ok := asynq.GetQueueName(ctx); ok {
		tc.Queue = queue
	}
	if n, ok := asynq.GetRetryCount(ctx); ok {
		tc.RetryCount = n
	}
	if n, ok := asynq.GetMaxRetry(ctx); ok {
		tc.MaxRetry = n
	}

	return tc
}

type taskContextKey struct{}

// WithTaskContext makes tc reachable from code the task body calls into.
func WithTaskContext(ctx context.Context, tc TaskContext) context.Context {
	return context.WithValue(ctx, taskContextKey{}, tc)
}

func TaskContextFrom(ctx context.Context) (TaskContext, bool) {
	tc, ok := ctx.Value(taskContextKey{}).(TaskContext)
	return tc, ok
}

// LastAttempt reports whether a failure now sends the task to the archive.
func (tc TaskContext) LastAttempt() bool {
	return tc.RetryCount >= tc.MaxRetry
}
