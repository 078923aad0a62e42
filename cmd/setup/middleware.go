package setup

import (
	"context"
	"net/http"
	"time"

	"github.com/IsaacDSC/miracle/internal/insights"
	"github.com/IsaacDSC/miracle/internal/tasks"
	"github.com/IsaacDSC/miracle/pkg/ctxlogger"
	"github.com/IsaacDSC/miracle/pkg/logs"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type ConsumedRecorder interface {
	Consumed(ctx context.Context, input insights.Consumed) error
}

func AsynqLogger(h asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
		start := time.Now()
		queue, _ := asynq.GetQueueName(ctx)
		taskID, _ := asynq.GetTaskID(ctx)
		logger := logs.With(
			"task_type", t.Type(),
			"task_id", taskID,
			"queue", queue,
			"request_id", uuid.New().String(),
		)

		logger.Info("Start processing")

		ctx = ctxlogger.WithLogger(ctx, logger)

		err := h.ProcessTask(ctx, t)
		if err != nil {
			logger.Error("Error processing task", "error", err, "elapsed_time", time.Since(start))
			return err
		}

		logger.Info("Finished processing", "elapsed_time", time.Since(start))

		return nil
	})
}

// AsynqInsights records the outcome of every task. Recording failures are
// logged and never change the task result.
func AsynqInsights(rec ConsumedRecorder) asynq.MiddlewareFunc {
	return func(h asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			start := time.Now()
			err := h.ProcessTask(ctx, t)

			queue, _ := asynq.GetQueueName(ctx)
			consumed := insights.Consumed{TaskName: t.Type(), Queue: queue, ACK: err == nil, Elapsed: time.Since(start)}
			if recErr := rec.Consumed(ctx, consumed); recErr != nil {
				ctxlogger.GetLogger(ctx).Warn("could not record task insights", "error", recErr)
			}

			return err
		})
	}
}

// TaskErrorHandler logs whether a failed task will be retried or archived.
func TaskErrorHandler() asynq.ErrorHandlerFunc {
	return func(ctx context.Context, t *asynq.Task, err error) {
		tc := tasks.NewTaskContext(ctx, t.Type(), nil)
		logger := logs.With("task_type", t.Type(), "task_id", tc.ID, "queue", tc.Queue, "retry", tc.RetryCount, "max_retry", tc.MaxRetry)

		if tc.LastAttempt() {
			logger.Error("task archived after exhausting retries", "error", err)
			return
		}

		logger.Warn("task failed, will be retried", "error", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		logger := logs.With(
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
			"request_id", requestID,
		)

		ctx := ctxlogger.WithLogger(r.Context(), logger)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.Debug("request served", "status", rec.status, "elapsed_time", time.Since(start))
	})
}
