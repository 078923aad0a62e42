package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/IsaacDSC/miracle/cmd/setup"
	"github.com/IsaacDSC/miracle/internal/cfg"
	"github.com/IsaacDSC/miracle/internal/dispatch"
	"github.com/IsaacDSC/miracle/internal/tasks"
	"github.com/IsaacDSC/miracle/pkg/logs"
	"github.com/IsaacDSC/miracle/pkg/publisher"
	"github.com/hibiken/asynq"
)

var (
	errMissingFlag = errors.New("missing required flag")
	errUsage       = errors.New("usage")
)

type request struct {
	task      string
	user      string
	urlIDs    []int64
	payload   []byte
	value     string
	apply     bool
	processIn time.Duration
}

// go run ./cmd/enqueue -task=delete -user=alice
// go run ./cmd/enqueue -task=delete_urls -url-ids=1,2,3 -dry-run
// go run ./cmd/enqueue -task=upload -user=alice -payload-file=./urls.json -process-in=5m
func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup always happens.
func run(args []string) error {
	fs := flag.NewFlagSet("enqueue", flag.ContinueOnError)
	task := fs.String("task", "", "task name: delete_urls, delete, upload, dummy or error")
	user := fs.String("user", "", "user the task acts on")
	urlIDs := fs.String("url-ids", "", "comma separated url ids for delete_urls")
	payloadFile := fs.String("payload-file", "", "file holding the upload payload")
	value := fs.String("value", "", "value carried by the error task")
	dryRun := fs.Bool("dry-run", false, "run the task without applying changes")
	processIn := fs.Duration("process-in", 0, "delay before the task becomes available to workers")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	conf := cfg.Get()
	logs.SetDefault(setup.NewLogger(conf))

	req, err := parseRequest(*task, *user, *urlIDs, *payloadFile, *value, *dryRun)
	if err != nil {
		logs.Error("invalid arguments", "error", err)
		fs.Usage()
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if *processIn < 0 {
		logs.Error("invalid arguments", "error", "negative -process-in")
		fs.Usage()
		return fmt.Errorf("%w: negative -process-in", errUsage)
	}
	req.processIn = *processIn

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: conf.Cache.CacheAddr})
	defer client.Close()

	_, dispatcher, err := setup.BuildRegistry(conf, nil, publisher.NewPublisher(client))
	if err != nil {
		logs.Error("could not build task registry", "error", err)
		return err
	}

	if err := send(context.Background(), dispatcher, req); err != nil {
		logs.Error("could not enqueue task", "task", req.task, "error", err)
		return err
	}

	logs.Info("task enqueued", "task", req.task, "apply", req.apply, "process_in", req.processIn)
	return nil
}

func parseRequest(task, user, urlIDs, payloadFile, value string, dryRun bool) (request, error) {
	req := request{task: task, user: user, value: value, apply: !dryRun}

	switch task {
	case "":
		return req, fmt.Errorf("%w: -task", errMissingFlag)
	case tasks.TaskDeleteURLs:
		ids, err := parseIDs(urlIDs)
		if err != nil {
			return req, err
		}
		if len(ids) == 0 {
			return req, fmt.Errorf("%w: -url-ids", errMissingFlag)
		}
		req.urlIDs = ids
	case tasks.TaskDelete:
		if user == "" {
			return req, fmt.Errorf("%w: -user", errMissingFlag)
		}
	case tasks.TaskUpload:
		if user == "" {
			return req, fmt.Errorf("%w: -user", errMissingFlag)
		}
		if payloadFile == "" {
			return req, fmt.Errorf("%w: -payload-file", errMissingFlag)
		}
		data, err := os.ReadFile(payloadFile)
		if err != nil {
			return req, fmt.Errorf("read payload file: %w", err)
		}
		req.payload = data
	}

	return req, nil
}

func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid url id %q: %w", part, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func send(ctx context.Context, d *dispatch.Dispatcher, req request) error {
	var opts []asynq.Option
	if req.processIn > 0 {
		opts = append(opts, publisher.WithProcessIn(req.processIn))
	}

	switch req.task {
	case tasks.TaskDeleteURLs:
		return d.DeleteURLs(ctx, req.urlIDs, req.apply, opts...)
	case tasks.TaskDelete:
		return d.DeleteUser(ctx, req.user, req.apply, opts...)
	case tasks.TaskUpload:
		return d.Upload(ctx, req.user, req.payload, req.apply, opts...)
	case tasks.TaskDummy:
		return d.Dummy(ctx, opts...)
	case tasks.TaskError:
		return d.Error(ctx, req.value, opts...)
	default:
		return d.Enqueue(ctx, req.task, nil, opts...)
	}
}
