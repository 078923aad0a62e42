package asynqsvc

import (
	"context"

	"github.com/hibiken/asynq"
)

// AsynqHandle binds a task type to the queue it is routed on and its handler.
type AsynqHandle struct {
	Event   string
	Queue   string
	Handler func(ctx context.Context, task *asynq.Task) error
}

func Register(mux *asynq.ServeMux, handles ...AsynqHandle) {
	for _, h := range handles {
		mux.HandleFunc(h.Event, h.Handler)
	}
}
