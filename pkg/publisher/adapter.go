package publisher

import (
	"context"

	"github.com/hibiken/asynq"
)

//go:generate mockgen -source=adapter.go -destination=mock_publisher.go -package=publisher

type Publisher interface {
	Publish(ctx context.Context, taskName string, payload any, opts ...asynq.Option) error
}
