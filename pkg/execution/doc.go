/*
Package execution provides the concurrency engine of execflow: a shared pool
of parked worker goroutines serving typed execution queues and self-feeding
execution streams.

# Model

A Pool owns a fixed set of workers and a registry of task providers. Queues
and streams register as providers on construction and report new work through
the delegate contract; the pool answers each hint by waking one idle worker,
which drains tasks from the registry in round-robin order until nothing is
ready, then parks again.

# Queues

A Queue is a typed FIFO plus an executee. Every pushed value is delivered to
the executee exactly once, in push order:

	pool := execution.NewPool()
	defer pool.Shutdown()

	queue := execution.NewQueue(pool, func(canceled *atomic.Bool, value string) {
		process(value)
	})
	defer queue.Close()

	queue.Push("qwe")

Close drains the queue: in-flight executions observe the canceled flag set to
true and are waited out; buffered values that never reached a worker are
dropped.

# Streams

A Stream invokes its executee repeatedly between Start and Stop. Every
completed iteration schedules the next one, so idle pool workers run
iterations in parallel; a dedicated extra worker owned by the stream keeps it
making progress even when the pool is saturated by queues:

	stream := execution.NewStream(pool, func(quit *atomic.Bool) {
		step()
	})
	defer stream.Close()

	stream.Start()
	...
	stream.Stop()

# Cancellation

Cancellation is cooperative. The library never kills a running executee; it
raises the atomic flag handed to the executee and waits for the call to
return. Buffered work that has not started is discarded on Close.

# Ordering

Pushes into one queue are delivered FIFO. There is no ordering across
different queues, or between a queue and a stream. Provider selection is
round-robin per worker wakeup, so no ready provider is starved while others
keep producing.
*/
package execution
