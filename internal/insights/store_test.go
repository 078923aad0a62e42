package insights

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/IsaacDSC/miracle/internal/testsupport"
	"github.com/IsaacDSC/miracle/pkg/intertime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ConsumedAndGetAll(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testsupport.Redis(t))

	require.NoError(t, store.Consumed(ctx, Consumed{TaskName: "upload", Queue: "celery_upload", ACK: true, Elapsed: 100 * time.Millisecond}))
	require.NoError(t, store.Consumed(ctx, Consumed{TaskName: "upload", Queue: "celery_upload", ACK: false, Elapsed: 200 * time.Millisecond}))
	require.NoError(t, store.Consumed(ctx, Consumed{TaskName: "delete", Queue: "celery_delete", ACK: true, Elapsed: 10 * time.Millisecond}))

	metrics, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, metrics, 2)

	assert.Equal(t, "delete", metrics[0].TaskName)
	assert.Equal(t, int64(1), metrics[0].Success)

	upload := metrics[1]
	assert.Equal(t, "upload", upload.TaskName)
	assert.Equal(t, "celery_upload", upload.Queue)
	assert.Equal(t, int64(1), upload.Success)
	assert.Equal(t, int64(1), upload.Failure)
	assert.Equal(t, intertime.Duration(200*time.Millisecond), upload.LastLatency)
	// 0.2*200 + 0.8*100
	assert.InDelta(t, float64(120*time.Millisecond), float64(upload.AvgLatency), float64(time.Microsecond))
}

type fakeReader struct {
	metrics []TaskMetric
	err     error
}

func (f fakeReader) GetAll(context.Context) ([]TaskMetric, error) {
	return f.metrics, f.err
}

func TestGetInsightsHandler(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h := GetInsightsHandler(fakeReader{metrics: []TaskMetric{{TaskName: "delete", Queue: "celery_delete", Success: 3, AvgLatency: intertime.Duration(time.Second)}}})

		rr := httptest.NewRecorder()
		h.Handler(rr, httptest.NewRequest(http.MethodGet, "/api/v1/insights", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"tasks":[{"task_name":"delete","queue":"celery_delete","success":3,"failure":0,"last_latency":"0s","avg_latency":"1s"}]}`, rr.Body.String())
	})

	t.Run("filtered", func(t *testing.T) {
		h := GetInsightsHandler(fakeReader{metrics: []TaskMetric{
			{TaskName: "delete", Queue: "celery_delete", Success: 3},
			{TaskName: "upload", Queue: "celery_upload", Failure: 1},
		}})

		rr := httptest.NewRecorder()
		h.Handler(rr, httptest.NewRequest(http.MethodGet, "/api/v1/insights?failing=true", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"task_name":"upload"`)
		assert.NotContains(t, rr.Body.String(), `"task_name":"delete"`)
	})

	t.Run("bad filter", func(t *testing.T) {
		h := GetInsightsHandler(fakeReader{})

		rr := httptest.NewRecorder()
		h.Handler(rr, httptest.NewRequest(http.MethodGet, "/api/v1/insights?failing=maybe", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("store error", func(t *testing.T) {
		h := GetInsightsHandler(fakeReader{err: errors.New("redis down")})

		rr := httptest.NewRecorder()
		h.Handler(rr, httptest.NewRequest(http.MethodGet, "/api/v1/insights", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
