package setup

import (
	"fmt"

	"github.com/IsaacDSC/miracle/internal/cfg"
	"github.com/IsaacDSC/miracle/internal/tasks"
	"github.com/IsaacDSC/miracle/pkg/asynqsvc"
	"github.com/IsaacDSC/miracle/pkg/cachemanager"
	"github.com/IsaacDSC/miracle/pkg/logs"
	"github.com/hibiken/asynq"
)

func NewWorkerMux(reg *tasks.Registry, cache cachemanager.Cache, rec ConsumedRecorder) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Use(AsynqLogger)
	if rec != nil {
		mux.Use(AsynqInsights(rec))
	}

	asynqsvc.Register(mux, reg.Handles(cache)...)

	return mux
}

// StartWorker starts consuming the configured queues and returns the server
// so the caller can shut it down.
func StartWorker(conf cfg.Config, reg *tasks.Registry, cache cachemanager.Cache, rec ConsumedRecorder) (*asynq.Server, error) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: conf.Cache.CacheAddr},
		asynq.Config{
			Concurrency:  conf.AsynqConfig.Concurrency,
			Queues:       conf.AsynqConfig.Queues,
			ErrorHandler: TaskErrorHandler(),
		},
	)

	mux := NewWorkerMux(reg, cache, rec)

	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("could not start worker: %w", err)
	}

	logs.Info("Worker started", "queues", conf.AsynqConfig.Queues.Names(), "concurrency", conf.AsynqConfig.Concurrency)

	return srv, nil
}
