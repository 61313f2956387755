/*
Package scheduler provides time-based job scheduling on top of the execflow
execution engine: one-time, delayed, repeating, and cron jobs are fired by
pushing them into an execution queue, so all scheduled work runs on the
shared worker pool.

Basic usage:

	pool := execution.NewPool()
	defer pool.Shutdown()

	s := scheduler.NewWithConfig(scheduler.Config{Delegate: pool})
	if err := s.Start(); err != nil {
		log.Fatal(err)
	}

	_ = s.ScheduleAfter("cleanup", func(canceled *atomic.Bool) {
		cleanup()
	}, 5*time.Second)

	_ = s.ScheduleCron("report", "0 0 * * * *", func(canceled *atomic.Bool) {
		report()
	})

	...
	<-s.Stop()

Cron expressions use the six-field form with a seconds column. Jobs receive
the same cooperative cancellation flag as queue executees: it turns true
while the scheduler is stopping, and long-running jobs should check it.

Stop is terminal. It stops the tick loop, drains the firing queue, and shuts
down the pool when the scheduler owns one.
*/
package scheduler
