package userdata

import "context"

//go:generate mockgen -source=store.go -destination=mock_store.go -package=userdata

// Store persists the URLs and uploads owned by a user.
type Store interface {
	AddURLs(ctx context.Context, user string, urls []string) ([]int64, error)
	UserURLIDs(ctx context.Context, user string) ([]int64, error)
	DeleteURLs(ctx context.Context, ids []int64) (int64, error)
	DeleteUser(ctx context.Context, user string) (bool, error)
	SaveUpload(ctx context.Context, user string, payload []byte) error
}

// URLDeletionScheduler enqueues a delete_urls task for later execution.
type URLDeletionScheduler interface {
	ScheduleURLDeletion(ctx context.Context, urlIDs []int64, apply bool) error
}
