package cfg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsynqQueues_SetValue(t *testing.T) {
	var queues AsynqQueues

	require.NoError(t, queues.SetValue(`{"celery_delete": 5, "celery_upload": 2}`))
	assert.Equal(t, AsynqQueues{"celery_delete": 5, "celery_upload": 2}, queues)

	assert.Error(t, queues.SetValue(`not-json`))
}

func TestAsynqQueues_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		queues AsynqQueues
		want   bool
	}{
		{name: "defaults", queues: DefaultQueues(), want: true},
		{name: "empty", queues: AsynqQueues{}, want: false},
		{name: "zero_priority", queues: AsynqQueues{"celery_delete": 0}, want: false},
		{name: "empty_name", queues: AsynqQueues{"": 1}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.queues.IsValid())
		})
	}
}

func TestAsynqQueues_Names(t *testing.T) {
	assert.Equal(t, []string{"celery_default", "celery_delete", "celery_upload"}, DefaultQueues().Names())
	assert.True(t, DefaultQueues().Contains("celery_upload"))
	assert.False(t, DefaultQueues().Contains("critical"))
}

func TestPort_String(t *testing.T) {
	assert.Equal(t, ":8080", Port(8080).String())
}

func TestGet_ReadsEnvironment(t *testing.T) {
	loaded = false
	t.Cleanup(func() { loaded = false })

	t.Setenv("API_PORT", "9090")
	t.Setenv("TESTING", "true")
	t.Setenv("CACHE_ADDR", "redis:6379")
	t.Setenv("CACHE_DEFAULT_TTL", "1h")
	t.Setenv("WQ_QUEUES", `{"celery_default": 1, "celery_delete": 4, "celery_upload": 2}`)

	conf := Get()

	assert.Equal(t, Port(9090), conf.ApiPort)
	assert.True(t, conf.Testing)
	assert.Equal(t, "redis:6379", conf.Cache.CacheAddr)
	assert.Equal(t, time.Hour, conf.Cache.DefaultTTL)
	assert.Equal(t, DriverRedis, conf.ConfigDatabase.Driver)
	assert.Equal(t, 4, conf.AsynqConfig.Queues["celery_delete"])
	assert.Equal(t, 10, conf.AsynqConfig.Concurrency)
}

func TestGet_DefaultQueues(t *testing.T) {
	loaded = false
	t.Cleanup(func() { loaded = false })

	t.Setenv("WQ_QUEUES", "")

	assert.Equal(t, DefaultQueues(), Get().AsynqConfig.Queues)
}

func TestGet_RereadDoesNotKeepPreviousQueues(t *testing.T) {
	loaded = false
	t.Cleanup(func() { loaded = false })

	t.Setenv("WQ_QUEUES", `{"celery_default": 1, "celery_delete": 4, "celery_upload": 2}`)
	require.Equal(t, 4, Get().AsynqConfig.Queues["celery_delete"])

	loaded = false
	t.Setenv("WQ_QUEUES", "")

	assert.Equal(t, DefaultQueues(), Get().AsynqConfig.Queues)
}

func TestGet_LogSource(t *testing.T) {
	loaded = false
	t.Cleanup(func() { loaded = false })

	t.Setenv("LOG_SOURCE", "true")

	assert.True(t, Get().LogSource)
}
