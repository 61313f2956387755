// Package metrics provides Prometheus instrumentation for execflow components.
//
// This package enables monitoring for the execution engine's pools, queues,
// streams, and the job scheduler through Prometheus metrics.
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	// Pool with metrics
//	pool := execution.NewPoolWithMetrics("main_pool", execution.Config{})
//
//	// Queue with metrics
//	queue := execution.NewQueueWithMetrics(pool, "ingest_queue", executee)
//
//	// Scheduler with metrics
//	s := scheduler.NewWithMetrics("job_scheduler")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
//	queue := execution.NewQueueWithConfigAndMetrics(pool, "ingest_queue", config, executee)
//
// Components configured with the same registerer share one Registry
// instance; Resolve caches per registerer.
//
// # Available Metrics
//
// Pool metrics:
//
//   - execflow_pool_size: Number of workers in the pool
//   - execflow_pool_tasks_panicked_total: Tasks that panicked during execution
//
// Queue metrics:
//
//   - execflow_queue_depth: Buffered values not yet handed to a worker
//   - execflow_queue_tasks_executed_total: Executee invocations completed
//   - execflow_queue_task_duration_seconds: Time spent inside the executee
//
// Stream metrics:
//
//   - execflow_stream_iterations_total: Stream executee iterations completed
//
// Scheduler metrics:
//
//   - execflow_scheduler_jobs_scheduled_total: Jobs accepted by the scheduler
//   - execflow_scheduler_jobs_fired_total: Job firings dispatched to the queue
//
// # Labels
//
// Metrics carry the user-provided component name as a label: pool_name,
// queue_name, stream_name, or scheduler_name.
package metrics
