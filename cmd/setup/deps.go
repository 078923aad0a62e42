package setup

import (
	"context"
	"errors"
	"fmt"

	"github.com/IsaacDSC/miracle/internal/cfg"
	"github.com/IsaacDSC/miracle/internal/dispatch"
	"github.com/IsaacDSC/miracle/internal/insights"
	"github.com/IsaacDSC/miracle/internal/tasks"
	"github.com/IsaacDSC/miracle/internal/userdata"
	"github.com/IsaacDSC/miracle/pkg/cachemanager"
	"github.com/IsaacDSC/miracle/pkg/logs"
	"github.com/IsaacDSC/miracle/pkg/publisher"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const AppName = "miracle"

var ErrUnknownDriver = errors.New("unknown database driver")

type Dependencies struct {
	Redis       *redis.Client
	Cache       *cachemanager.Strategy
	Store       userdata.Store
	AsynqClient *asynq.Client
	Registry    *tasks.Registry
	Dispatcher  *dispatch.Dispatcher
	Insights    *insights.Store

	closers []func(ctx context.Context) error
}

// Build connects to redis and the configured store, then wires the registry
// and dispatcher. Close releases everything Build opened.
func Build(ctx context.Context, conf cfg.Config) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Redis = redis.NewClient(&redis.Options{Addr: conf.Cache.CacheAddr})
	deps.closers = append(deps.closers, func(context.Context) error { return deps.Redis.Close() })
	if err := deps.Redis.Ping(ctx).Err(); err != nil {
		deps.Close(ctx)
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	deps.Cache = cachemanager.NewStrategy(AppName, deps.Redis, conf.Cache.DefaultTTL)
	deps.Insights = insights.NewStore(deps.Redis)

	store, err := deps.newStore(ctx, conf)
	if err != nil {
		deps.Close(ctx)
		return nil, err
	}
	deps.Store = store

	deps.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{Addr: conf.Cache.CacheAddr})
	deps.closers = append(deps.closers, func(context.Context) error { return deps.AsynqClient.Close() })

	reg, dispatcher, err := BuildRegistry(conf, userdata.NewService(store), publisher.NewPublisher(deps.AsynqClient))
	if err != nil {
		deps.Close(ctx)
		return nil, err
	}

	deps.Registry = reg
	deps.Dispatcher = dispatcher

	return deps, nil
}

func (d *Dependencies) newStore(ctx context.Context, conf cfg.Config) (userdata.Store, error) {
	switch conf.ConfigDatabase.Driver {
	case cfg.DriverRedis, "":
		return userdata.NewRedisStore(AppName, d.Redis), nil
	case cfg.DriverMongo:
		client, err := mongo.Connect(options.Client().ApplyURI(conf.ConfigDatabase.DbConn))
		if err != nil {
			return nil, fmt.Errorf("could not connect to mongo: %w", err)
		}
		d.closers = append(d.closers, client.Disconnect)

		if err := client.Ping(ctx, nil); err != nil {
			return nil, fmt.Errorf("could not ping mongo: %w", err)
		}

		return userdata.NewMongoStore(ctx, client)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, conf.ConfigDatabase.Driver)
	}
}

// BuildRegistry declares every task allowed by conf and checks that each one
// routes to a queue the worker consumes.
func BuildRegistry(conf cfg.Config, svc tasks.DataService, pub publisher.Publisher) (*tasks.Registry, *dispatch.Dispatcher, error) {
	reg := tasks.NewRegistry()
	dispatcher := dispatch.NewDispatcher(pub, reg)

	if err := tasks.RegisterDataTasks(reg, svc, dispatcher, conf.AsynqConfig.MaxRetry); err != nil {
		return nil, nil, err
	}

	if conf.Testing {
		if err := tasks.RegisterTestingTasks(reg); err != nil {
			return nil, nil, err
		}
	}

	if err := reg.Validate(conf.AsynqConfig.Queues); err != nil {
		return nil, nil, err
	}

	return reg, dispatcher, nil
}

func (d *Dependencies) Close(ctx context.Context) {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](ctx); err != nil {
			logs.Warn("error closing dependency", "error", err)
		}
	}
	d.closers = nil
}
