/*
Package execflow provides a Go library for handing off work to a shared pool
of workers through typed execution queues and self-feeding execution streams.

Execution engine (pkg/execution):
  - Pool: fixed set of parked workers plus a round-robin provider registry
  - Queue: typed FIFO; every pushed value runs once, in order, on some worker
  - Stream: self-feeding producer with a dedicated backup worker

Scheduling (pkg/scheduling):
  - scheduler: cron, delayed, and repeating jobs fired through an execution queue

Observability (pkg/metrics):
  - Prometheus instrumentation for pools, queues, streams, and schedulers

Example usage:

	import (
		"sync/atomic"

		"github.com/vnykmshr/execflow/pkg/execution"
	)

	pool := execution.NewPool()
	defer pool.Shutdown()

	queue := execution.NewQueue(pool, func(canceled *atomic.Bool, value string) {
		process(value)
	})
	defer queue.Close()

	queue.Push("qwe")
*/
package execflow
