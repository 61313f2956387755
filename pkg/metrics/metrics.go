// Package metrics provides Prometheus instrumentation for execflow components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for execflow components.
type Registry struct {
	// Pool Metrics
	PoolSize      *prometheus.GaugeVec
	TasksPanicked *prometheus.CounterVec

	// Queue Metrics
	QueueDepth    *prometheus.GaugeVec
	TasksExecuted *prometheus.CounterVec
	TaskDuration  *prometheus.HistogramVec

	// Stream Metrics
	StreamIterations *prometheus.CounterVec

	// Scheduler Metrics
	JobsScheduled *prometheus.CounterVec
	JobsFired     *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by execflow components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Pool Metrics
		PoolSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "execflow",
				Subsystem: "pool",
				Name:      "size",
				Help:      "Number of workers in the pool",
			},
			[]string{"pool_name"},
		),

		TasksPanicked: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "execflow",
				Subsystem: "pool",
				Name:      "tasks_panicked_total",
				Help:      "Total number of tasks that panicked during execution",
			},
			[]string{"pool_name"},
		),

		// Queue Metrics
		QueueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "execflow",
				Subsystem: "queue",
				Name:      "depth",
				Help:      "Number of buffered values not yet handed to a worker",
			},
			[]string{"queue_name"},
		),

		TasksExecuted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "execflow",
				Subsystem: "queue",
				Name:      "tasks_executed_total",
				Help:      "Total number of executee invocations completed",
			},
			[]string{"queue_name"},
		),

		TaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "execflow",
				Subsystem: "queue",
				Name:      "task_duration_seconds",
				Help:      "Time spent inside the executee per value",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"queue_name"},
		),

		// Stream Metrics
		StreamIterations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "execflow",
				Subsystem: "stream",
				Name:      "iterations_total",
				Help:      "Total number of stream executee iterations completed",
			},
			[]string{"stream_name"},
		),

		// Scheduler Metrics
		JobsScheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "execflow",
				Subsystem: "scheduler",
				Name:      "jobs_scheduled_total",
				Help:      "Total number of jobs accepted by the scheduler",
			},
			[]string{"scheduler_name"},
		),

		JobsFired: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "execflow",
				Subsystem: "scheduler",
				Name:      "jobs_fired_total",
				Help:      "Total number of job firings dispatched to the execution queue",
			},
			[]string{"scheduler_name"},
		),
	}
}
