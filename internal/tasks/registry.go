package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/IsaacDSC/miracle/internal/cfg"
	"github.com/IsaacDSC/miracle/pkg/asynqsvc"
	"github.com/IsaacDSC/miracle/pkg/cachemanager"
	"github.com/IsaacDSC/miracle/pkg/ctxlogger"
	"github.com/IsaacDSC/miracle/pkg/publisher"
	"github.com/hibiken/asynq"
)

var (
	ErrUnknownTask   = errors.New("unknown task")
	ErrDuplicateTask = errors.New("task already registered")
)

// HandlerFunc is a task body. The returned value is stored as the task result.
type HandlerFunc func(ctx context.Context, tc TaskContext, payload []byte) (any, error)

type Definition struct {
	Name    string
	Queue   string
	Opts    []asynq.Option
	Handler HandlerFunc
}

// EnqueueOpts routes the task to its queue followed by its own options.
func (d Definition) EnqueueOpts() []asynq.Option {
	opts := make([]asynq.Option, 0, len(d.Opts)+1)
	opts = append(opts, publisher.WithQueue(d.Queue))
	return append(opts, d.Opts...)
}

// Registry maps task names to their definitions. It is filled at startup and
// read by both the worker and the producers.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

func (r *Registry) Register(def Definition) error {
	if def.Name == "" || def.Queue == "" || def.Handler == nil {
		return fmt.Errorf("invalid task definition %q: name, queue and handler are required", def.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTask, def.Name)
	}

	r.defs[def.Name] = def
	return nil
}

func (r *Registry) Lookup(name string) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	return def, nil
}

// Definitions returns every registered task sorted by name.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.defs))
	for _, d := range r.defs {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Queues returns the distinct queues tasks are routed to, sorted.
func (r *Registry) Queues() []string {
	seen := map[string]struct{}{}
	var queues []string
	for _, d := range r.Definitions() {
		if _, ok := seen[d.Queue]; ok {
			continue
		}
		seen[d.Queue] = struct{}{}
		queues = append(queues, d.Queue)
	}
	sort.Strings(queues)
	return queues
}

// Validate fails when a task is routed to a queue the worker does not consume.
func (r *Registry) Validate(configured cfg.AsynqQueues) error {
	for _, q := range r.Queues() {
		if !configured.Contains(q) {
			return fmt.Errorf("queue %s is not consumed by the worker", q)
		}
		if configured[q] <= 0 {
			return fmt.Errorf("queue %s has no priority configured", q)
		}
	}
	return nil
}

// Handles adapts every definition to an asynq handler bound to cache.
func (r *Registry) Handles(cache cachemanager.Cache) []asynqsvc.AsynqHandle {
	defs := r.Definitions()
	handles := make([]asynqsvc.AsynqHandle, 0, len(defs))
	for _, d := range defs {
		handles = append(handles, asynqsvc.AsynqHandle{
			Event:   d.Name,
			Queue:   d.Queue,
			Handler: adapt(d, cache),
		})
	}
	return handles
}

func adapt(def Definition, cache cachemanager.Cache) func(ctx context.Context, task *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		tc := NewTaskContext(ctx, def.Name, cache)
		ctx = WithTaskContext(ctx, tc)

		result, err := def.Handler(ctx, tc, task.Payload())
		if err != nil {
			return err
		}

		return writeResult(ctx, task, result)
	}
}

func writeResult(ctx context.Context, task *asynq.Task, result any) error {
	w := task.ResultWriter()
	if w == nil || result == nil {
		return nil
	}

	b, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal %s result: %w", task.Type(), err)
	}

	if _, err := w.Write(b); err != nil {
		// the work is done; a lost result must not trigger a retry
		ctxlogger.GetLogger(ctx).Warn("could not write task result", "task_type", task.Type(), "error", err)
	}

	return nil
}
