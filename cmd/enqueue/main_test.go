package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IsaacDSC/miracle/internal/cfg"
	"github.com/IsaacDSC/miracle/internal/dispatch"
	"github.com/IsaacDSC/miracle/internal/tasks"
	"github.com/IsaacDSC/miracle/internal/testsupport"
	"github.com/IsaacDSC/miracle/pkg/logs"
	"github.com/IsaacDSC/miracle/pkg/publisher"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestParseRequest(t *testing.T) {
	payloadFile := filepath.Join(t.TempDir(), "urls.json")
	require.NoError(t, os.WriteFile(payloadFile, []byte(`{"urls":["https://example.com"]}`), 0o600))

	tests := []struct {
		name        string
		task        string
		user        string
		urlIDs      string
		payloadFile string
		dryRun      bool
		want        request
		wantErr     bool
	}{
		{name: "missing task", wantErr: true},
		{
			name:   "delete_urls parses ids",
			task:   tasks.TaskDeleteURLs,
			urlIDs: "7, 42,",
			want:   request{task: tasks.TaskDeleteURLs, urlIDs: []int64{7, 42}, apply: true},
		},
		{name: "delete_urls without ids", task: tasks.TaskDeleteURLs, wantErr: true},
		{name: "delete_urls with a bad id", task: tasks.TaskDeleteURLs, urlIDs: "7,x", wantErr: true},
		{
			name:   "delete dry run",
			task:   tasks.TaskDelete,
			user:   "alice",
			dryRun: true,
			want:   request{task: tasks.TaskDelete, user: "alice", apply: false},
		},
		{name: "delete without user", task: tasks.TaskDelete, wantErr: true},
		{
			name:        "upload reads the payload file",
			task:        tasks.TaskUpload,
			user:        "alice",
			payloadFile: payloadFile,
			want:        request{task: tasks.TaskUpload, user: "alice", payload: []byte(`{"urls":["https://example.com"]}`), apply: true},
		},
		{name: "upload with a missing file", task: tasks.TaskUpload, user: "alice", payloadFile: filepath.Join(t.TempDir(), "nope"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRequest(tt.task, tt.user, tt.urlIDs, tt.payloadFile, "", tt.dryRun)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSend_RoutesToDispatcher(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := publisher.NewMockPublisher(ctrl)

	reg := tasks.NewRegistry()
	d := dispatch.NewDispatcher(pub, reg)
	require.NoError(t, tasks.RegisterDataTasks(reg, nil, d, 3))

	pub.EXPECT().
		Publish(gomock.Any(), tasks.TaskDelete, tasks.DeletePayload{User: "alice", ApplyDelete: false}, gomock.Any()).
		Return(nil)

	err := send(context.Background(), d, request{task: tasks.TaskDelete, user: "alice", apply: false})
	assert.NoError(t, err)
}

func TestSend_UnknownTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := dispatch.NewDispatcher(publisher.NewMockPublisher(ctrl), tasks.NewRegistry())

	err := send(context.Background(), d, request{task: "reboot"})
	assert.ErrorIs(t, err, tasks.ErrUnknownTask)
}

func processInOf(opts []asynq.Option) (time.Duration, bool) {
	for _, o := range opts {
		if o.Type() == asynq.ProcessInOpt {
			return o.Value().(time.Duration), true
		}
	}
	return 0, false
}

func TestSend_ProcessInDelaysTask(t *testing.T) {
	tests := []struct {
		name      string
		processIn time.Duration
		wantDelay bool
	}{
		{name: "delayed", processIn: 5 * time.Minute, wantDelay: true},
		{name: "immediate", processIn: 0, wantDelay: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			pub := publisher.NewMockPublisher(ctrl)

			reg := tasks.NewRegistry()
			d := dispatch.NewDispatcher(pub, reg)
			require.NoError(t, tasks.RegisterDataTasks(reg, nil, d, 3))

			pub.EXPECT().
				Publish(gomock.Any(), tasks.TaskDeleteURLs, gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, _ any, opts ...asynq.Option) error {
					delay, ok := processInOf(opts)
					assert.Equal(t, tt.wantDelay, ok)
					if tt.wantDelay {
						assert.Equal(t, tt.processIn, delay)
					}
					assert.Equal(t, tasks.QueueDelete, publisher.QueueOf(opts), "delay keeps the task's queue")
					return nil
				})

			err := send(context.Background(), d, request{task: tasks.TaskDeleteURLs, urlIDs: []int64{1}, apply: true, processIn: tt.processIn})
			assert.NoError(t, err)
		})
	}
}

func useConfig(t *testing.T, conf cfg.Config) {
	t.Helper()
	previousConf, previousLogger := cfg.Get(), logs.Default()
	cfg.SetConfig(conf)
	t.Cleanup(func() {
		cfg.SetConfig(previousConf)
		logs.SetDefault(previousLogger)
	})
}

func TestRun_UsageErrors(t *testing.T) {
	useConfig(t, cfg.Config{LogLevel: "error", AsynqConfig: cfg.AsynqConfig{Queues: cfg.DefaultQueues()}})

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"-bogus"}},
		{name: "missing task", args: nil},
		{name: "delete without user", args: []string{"-task=delete"}},
		{name: "negative delay", args: []string{"-task=dummy", "-process-in=-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, run(tt.args), errUsage)
		})
	}
}

func TestRun_EnqueuesDelayedTask(t *testing.T) {
	addr := testsupport.Redis(t).Options().Addr
	useConfig(t, cfg.Config{
		Testing:     true,
		LogLevel:    "error",
		Cache:       cfg.Cache{CacheAddr: addr},
		AsynqConfig: cfg.AsynqConfig{MaxRetry: 3, Queues: cfg.DefaultQueues()},
	})

	require.NoError(t, run([]string{"-task=dummy", "-process-in=1h"}))

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: addr})
	defer inspector.Close()

	scheduled, err := inspector.ListScheduledTasks(tasks.QueueDefault)
	require.NoError(t, err)
	require.Len(t, scheduled, 1)
	assert.Equal(t, tasks.TaskDummy, scheduled[0].Type)
	assert.WithinDuration(t, time.Now().Add(time.Hour), scheduled[0].NextProcessAt, time.Minute)
}
