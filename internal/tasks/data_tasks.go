package tasks

import (
	"context"

	"github.com/IsaacDSC/miracle/internal/userdata"
	"github.com/IsaacDSC/miracle/pkg/ctxlogger"
	"github.com/IsaacDSC/miracle/pkg/publisher"
	"github.com/hibiken/asynq"
)

//go:generate mockgen -source=data_tasks.go -destination=mock_data_service.go -package=tasks

// DataService holds the delete and upload routines the data tasks forward to.
type DataService interface {
	DeleteURLs(ctx context.Context, urlIDs []int64, apply bool) (userdata.DeleteURLsResult, error)
	DeleteUser(ctx context.Context, user string, scheduler userdata.URLDeletionScheduler, apply bool) (userdata.DeleteUserResult, error)
	Upload(ctx context.Context, user string, payload []byte, apply bool) (userdata.UploadResult, error)
}

// RegisterDataTasks declares delete_urls, delete and upload. scheduler is used
// by delete to enqueue the follow-up delete_urls task.
func RegisterDataTasks(reg *Registry, svc DataService, scheduler userdata.URLDeletionScheduler, maxRetry int) error {
	opts := []asynq.Option{publisher.WithMaxRetry(maxRetry)}

	defs := []Definition{
		{Name: TaskDeleteURLs, Queue: QueueDelete, Opts: opts, Handler: deleteURLsHandler(svc)},
		{Name: TaskDelete, Queue: QueueDelete, Opts: opts, Handler: deleteUserHandler(svc, scheduler)},
		{Name: TaskUpload, Queue: QueueUpload, Opts: opts, Handler: uploadHandler(svc)},
	}

	for _, d := range defs {
		if err := reg.Register(d); err != nil {
			return err
		}
	}

	return nil
}

func deleteURLsHandler(svc DataService) HandlerFunc {
	return func(ctx context.Context, tc TaskContext, payload []byte) (any, error) {
		p, err := decodeDeleteURLs(payload)
		if err != nil {
			return nil, err
		}

		ctxlogger.GetLogger(ctx).Debug("delete urls", "task_id", tc.ID, "urls", len(p.URLIDs), "apply_delete", p.ApplyDelete)

		return svc.DeleteURLs(ctx, p.URLIDs, p.ApplyDelete)
	}
}

func deleteUserHandler(svc DataService, scheduler userdata.URLDeletionScheduler) HandlerFunc {
	return func(ctx context.Context, tc TaskContext, payload []byte) (any, error) {
		p, err := decodeDelete(payload)
		if err != nil {
			return nil, err
		}

		ctxlogger.GetLogger(ctx).Debug("delete user", "task_id", tc.ID, "user", p.User, "apply_delete", p.ApplyDelete)

		return svc.DeleteUser(ctx, p.User, scheduler, p.ApplyDelete)
	}
}

func uploadHandler(svc DataService) HandlerFunc {
	return func(ctx context.Context, tc TaskContext, payload []byte) (any, error) {
		p, err := decodeUpload(payload)
		if err != nil {
			return nil, err
		}

		ctxlogger.GetLogger(ctx).Debug("upload", "task_id", tc.ID, "user", p.User, "bytes", len(p.Payload), "apply_upload", p.ApplyUpload)

		return svc.Upload(ctx, p.User, p.Payload, p.ApplyUpload)
	}
}
