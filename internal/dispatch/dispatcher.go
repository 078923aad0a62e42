package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/IsaacDSC/miracle/internal/tasks"
	"github.com/IsaacDSC/miracle/internal/userdata"
	"github.com/IsaacDSC/miracle/pkg/ctxlogger"
	"github.com/IsaacDSC/miracle/pkg/publisher"
	"github.com/hibiken/asynq"
)

// Dispatcher enqueues task invocations on the queue their definition declares.
type Dispatcher struct {
	pub      publisher.Publisher
	registry *tasks.Registry
}

var _ userdata.URLDeletionScheduler = (*Dispatcher)(nil)

func NewDispatcher(pub publisher.Publisher, registry *tasks.Registry) *Dispatcher {
	return &Dispatcher{pub: pub, registry: registry}
}

// Enqueue publishes payload for the named task. The definition's queue and
// options come first so opts can override them.
func (d *Dispatcher) Enqueue(ctx context.Context, name string, payload any, opts ...asynq.Option) error {
	def, err := d.registry.Lookup(name)
	if err != nil {
		return err
	}

	definedOpts := append(def.EnqueueOpts(), opts...)
	if err := d.pub.Publish(ctx, def.Name, payload, definedOpts...); err != nil {
		return fmt.Errorf("dispatch %s: %w", name, err)
	}

	return nil
}

func (d *Dispatcher) DeleteURLs(ctx context.Context, urlIDs []int64, apply bool, opts ...asynq.Option) error {
	if len(urlIDs) == 0 {
		return nil
	}

	return d.Enqueue(ctx, tasks.TaskDeleteURLs, tasks.DeleteURLsPayload{URLIDs: urlIDs, ApplyDelete: apply}, opts...)
}

func (d *Dispatcher) DeleteUser(ctx context.Context, user string, apply bool, opts ...asynq.Option) error {
	return d.Enqueue(ctx, tasks.TaskDelete, tasks.DeletePayload{User: user, ApplyDelete: apply}, opts...)
}

func (d *Dispatcher) Upload(ctx context.Context, user string, payload []byte, apply bool, opts ...asynq.Option) error {
	return d.Enqueue(ctx, tasks.TaskUpload, tasks.UploadPayload{User: user, Payload: payload, ApplyUpload: apply}, opts...)
}

func (d *Dispatcher) Dummy(ctx context.Context, opts ...asynq.Option) error {
	return d.Enqueue(ctx, tasks.TaskDummy, struct{}{}, opts...)
}

func (d *Dispatcher) Error(ctx context.Context, value string, opts ...asynq.Option) error {
	return d.Enqueue(ctx, tasks.TaskError, tasks.ErrorPayload{Value: value}, opts...)
}

// ScheduleURLDeletion is the follow-up hook used by user deletion. Inside a
// running task the follow-up gets an id derived from the parent task, so a
// retried parent does not enqueue it twice.
func (d *Dispatcher) ScheduleURLDeletion(ctx context.Context, urlIDs []int64, apply bool) error {
	var opts []asynq.Option
	parent, inTask := tasks.TaskContextFrom(ctx)
	if inTask && parent.ID != "" {
		opts = append(opts, asynq.TaskID(FollowUpTaskID(parent)))
	}

	err := d.DeleteURLs(ctx, urlIDs, apply, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		ctxlogger.GetLogger(ctx).Info("url deletion already scheduled", "parent_task_id", parent.ID)
		return nil
	}

	return err
}

// FollowUpTaskID names the delete_urls task scheduled by parent.
func FollowUpTaskID(parent tasks.TaskContext) string {
	return tasks.TaskDeleteURLs + ":" + parent.Name + ":" + parent.ID
}
