package execution

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnykmshr/execflow/internal/testutil"
	"github.com/vnykmshr/execflow/pkg/metrics"
)

func TestQueueWithMetricsCountsExecutions(t *testing.T) {
	registerer := prometheus.NewRegistry()
	config := metrics.Config{Enabled: true, Registry: registerer}

	pool := NewPool()
	defer pool.Shutdown()

	var executed atomic.Int32
	queue := NewQueueWithConfigAndMetrics(pool, "test_queue", config, func(canceled *atomic.Bool, value int) {
		executed.Add(1)
	})
	defer queue.Close()

	const count = 10
	for i := 0; i < count; i++ {
		require.NoError(t, queue.Push(i))
	}

	testutil.Eventually(t, func() bool {
		return executed.Load() == count
	}, time.Second, 5*time.Millisecond)

	// Resolve caches per registerer, so this is the decorator's registry
	resolved := config.Resolve()
	assert.Equal(t, float64(count), promtestutil.ToFloat64(resolved.TasksExecuted.WithLabelValues("test_queue")))
}

func TestStreamWithMetricsCountsIterations(t *testing.T) {
	registerer := prometheus.NewRegistry()
	config := metrics.Config{Enabled: true, Registry: registerer}

	pool := NewPool()
	defer pool.Shutdown()

	stream := NewStreamWithConfigAndMetrics(pool, "test_stream", config, func(quit *atomic.Bool) {
		time.Sleep(time.Millisecond)
	})
	defer stream.Close()

	stream.Start()
	time.Sleep(50 * time.Millisecond)
	stream.Stop()

	resolved := config.Resolve()
	assert.Greater(t, promtestutil.ToFloat64(resolved.StreamIterations.WithLabelValues("test_stream")), 0.0)
}

func TestPoolWithMetricsReportsSize(t *testing.T) {
	registerer := prometheus.NewRegistry()
	config := metrics.Config{Enabled: true, Registry: registerer}

	pool := NewPoolWithConfigAndMetrics("test_pool", Config{WorkerCount: 2}, config)
	defer pool.Shutdown()

	resolved := config.Resolve()
	assert.Equal(t, 2.0, promtestutil.ToFloat64(resolved.PoolSize.WithLabelValues("test_pool")))
}

func TestPoolWithMetricsCountsPanics(t *testing.T) {
	registerer := prometheus.NewRegistry()
	config := metrics.Config{Enabled: true, Registry: registerer}

	pool := NewPoolWithConfigAndMetrics("panicky_pool", Config{WorkerCount: 1}, config)
	defer pool.Shutdown()

	queue := NewQueue(pool, func(canceled *atomic.Bool, value string) {
		panic(value)
	})
	defer queue.Close()

	require.NoError(t, queue.Push("boom"))

	resolved := config.Resolve()
	testutil.Eventually(t, func() bool {
		return promtestutil.ToFloat64(resolved.TasksPanicked.WithLabelValues("panicky_pool")) == 1.0
	}, time.Second, 5*time.Millisecond)
}

func TestMetricsDisabledFallsBackToPlainComponents(t *testing.T) {
	pool := NewPool()
	defer pool.Shutdown()

	var executed atomic.Int32
	queue := NewQueueWithConfigAndMetrics(pool, "ignored", metrics.Config{Enabled: false}, func(canceled *atomic.Bool, value int) {
		executed.Add(1)
	})
	defer queue.Close()

	require.NoError(t, queue.Push(1))

	testutil.Eventually(t, func() bool {
		return executed.Load() == 1
	}, time.Second, 5*time.Millisecond)
}
