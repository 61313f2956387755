package execution

import (
	"sync/atomic"
	"time"

	"github.com/vnykmshr/execflow/pkg/metrics"
)

// NewPoolWithMetrics creates a pool whose worker count and task panics are
// recorded in the default metrics registry under the given pool name.
func NewPoolWithMetrics(name string, config Config) *Pool {
	return NewPoolWithConfigAndMetrics(name, config, metrics.DefaultConfig())
}

// NewPoolWithConfigAndMetrics creates a pool with custom pool and metrics
// configuration.
func NewPoolWithConfigAndMetrics(name string, config Config, metricsConfig metrics.Config) *Pool {
	if !metricsConfig.Enabled {
		return NewPoolWithConfig(config)
	}
	registry := metricsConfig.Resolve()

	handler := config.PanicHandler
	config.PanicHandler = func(recovered any) {
		registry.TasksPanicked.WithLabelValues(name).Inc()
		if handler != nil {
			handler(recovered)
		}
	}

	p := NewPoolWithConfig(config)
	registry.PoolSize.WithLabelValues(name).Set(float64(p.Size()))
	return p
}

// NewQueueWithMetrics creates a queue whose executions are recorded in the
// default metrics registry under the given queue name.
func NewQueueWithMetrics[T any](d Delegate, name string, executee func(canceled *atomic.Bool, value T)) *Queue[T] {
	return NewQueueWithConfigAndMetrics(d, name, metrics.DefaultConfig(), executee)
}

// NewQueueWithConfigAndMetrics creates a queue with custom metrics
// configuration. The executee is wrapped to record per-value execution
// duration, a completion counter, and the remaining queue depth.
func NewQueueWithConfigAndMetrics[T any](d Delegate, name string, metricsConfig metrics.Config, executee func(canceled *atomic.Bool, value T)) *Queue[T] {
	if !metricsConfig.Enabled {
		return NewQueue(d, executee)
	}
	registry := metricsConfig.Resolve()

	var q *Queue[T]
	instrumented := func(canceled *atomic.Bool, value T) {
		start := time.Now()
		executee(canceled, value)

		registry.TaskDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		registry.TasksExecuted.WithLabelValues(name).Inc()
		registry.QueueDepth.WithLabelValues(name).Set(float64(q.Len()))
	}
	q = NewQueue(d, instrumented)
	return q
}

// NewStreamWithMetrics creates a stream whose completed iterations are
// counted in the default metrics registry under the given stream name.
func NewStreamWithMetrics(d Delegate, name string, executee func(quit *atomic.Bool)) *Stream {
	return NewStreamWithConfigAndMetrics(d, name, metrics.DefaultConfig(), executee)
}

// NewStreamWithConfigAndMetrics creates a stream with custom metrics
// configuration.
func NewStreamWithConfigAndMetrics(d Delegate, name string, metricsConfig metrics.Config, executee func(quit *atomic.Bool)) *Stream {
	if !metricsConfig.Enabled {
		return NewStream(d, executee)
	}
	registry := metricsConfig.Resolve()

	instrumented := func(quit *atomic.Bool) {
		executee(quit)
		registry.StreamIterations.WithLabelValues(name).Inc()
	}
	return NewStream(d, instrumented)
}
