package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IsaacDSC/miracle/pkg/ctxlogger"
	"github.com/hibiken/asynq"
)

type Task struct {
	client *asynq.Client
}

var _ Publisher = (*Task)(nil)

func NewPublisher(client *asynq.Client) *Task {
	return &Task{client: client}
}

// Publish marshals payload to JSON and enqueues it under taskName. Options are
// applied after the defaults, so callers override queue, retries and retention.
func (t *Task) Publish(ctx context.Context, taskName string, payload any, opts ...asynq.Option) error {
	l := ctxlogger.GetLogger(ctx)

	p, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("could not marshal payload: %w", err)
	}

	definedOpts := append(NewDefaultOpt(), opts...)

	info, err := t.client.EnqueueContext(ctx, asynq.NewTask(taskName, p), definedOpts...)
	if err != nil {
		return fmt.Errorf("could not enqueue task %s: %w", taskName, err)
	}

	l.Info("enqueued task", "task_type", taskName, "task_id", info.ID, "queue", info.Queue)

	return nil
}

func WithQueue(queue string) asynq.Option {
	return asynq.Queue(queue)
}

func WithMaxRetry(maxRetry int) asynq.Option {
	return asynq.MaxRetry(maxRetry)
}

func WithRetention(retention time.Duration) asynq.Option {
	return asynq.Retention(retention)
}

func WithProcessIn(processIn time.Duration) asynq.Option {
	return asynq.ProcessIn(processIn)
}

func NewDefaultOpt() []asynq.Option {
	return []asynq.Option{
		WithQueue("default"),
		WithMaxRetry(3),
		WithRetention(168 * time.Hour), // 7 days
	}
}

// QueueOf returns the queue selected by opts, the last Queue option winning.
func QueueOf(opts []asynq.Option) string {
	queue := ""
	for _, opt := range opts {
		if opt.Type() == asynq.QueueOpt {
			if q, ok := opt.Value().(string); ok {
				queue = q
			}
		}
	}
	return queue
}
