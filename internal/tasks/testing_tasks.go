package tasks

import (
	"context"
	"errors"
	"fmt"
)

var ErrInjected = errors.New("injected task error")

// RegisterTestingTasks declares dummy and error. They only exist when the
// process runs with TESTING=true.
func RegisterTestingTasks(reg *Registry) error {
	if err := reg.Register(Definition{Name: TaskDummy, Queue: QueueDefault, Handler: dummyHandler}); err != nil {
		return err
	}

	return reg.Register(Definition{Name: TaskError, Queue: QueueDefault, Handler: errorHandler})
}

// dummyHandler bumps the shared counter by 2 and returns what it reads back.
func dummyHandler(ctx context.Context, tc TaskContext, _ []byte) (any, error) {
	if tc.Cache == nil {
		return nil, errors.New("dummy: no cache bound to task context")
	}

	key := tc.Cache.Key(DummyCounterKey)
	if _, err := tc.Cache.IncrBy(ctx, key, 2); err != nil {
		return nil, fmt.Errorf("dummy: %w", err)
	}

	v, err := tc.Cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("dummy: %w", err)
	}

	return v, nil
}

func errorHandler(_ context.Context, _ TaskContext, payload []byte) (any, error) {
	p, err := decodeError(payload)
	if err != nil {
		return nil, err
	}

	return nil, fmt.Errorf("%w: %s", ErrInjected, p.Value)
}
