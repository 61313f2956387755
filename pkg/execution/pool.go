package execution

import (
	"runtime"
	"sync"
)

// Config holds configuration options for creating a pool.
type Config struct {
	// WorkerCount is the number of workers in the pool.
	// If 0, the detected CPU count is used (minimum 1).
	WorkerCount int

	// PanicHandler is called when a task panics during execution.
	// If nil, panics are recovered and dropped.
	PanicHandler func(recovered any)
}

// Pool is a fixed-size set of workers plus a task-provider registry. It is
// the production Delegate for queues and streams: when a provider reports
// new work, the pool wakes the first idle worker and points it at the
// registry. If every worker is busy, the hint is dropped; a busy worker
// re-polls the registry when its current drain ends.
type Pool struct {
	workers   []*Worker
	providers ProviderList

	shutdownOnce sync.Once
}

// NewPool creates a pool sized to the detected CPU concurrency (minimum 1).
func NewPool() *Pool {
	return NewPoolWithConfig(Config{})
}

// NewPoolWithConfig creates a pool with the specified configuration.
func NewPoolWithConfig(config Config) *Pool {
	if config.WorkerCount < 0 {
		panic("execution: worker count must not be negative")
	}

	count := config.WorkerCount
	if count == 0 {
		count = runtime.NumCPU()
		if count < 1 {
			count = 1
		}
	}

	p := &Pool{workers: make([]*Worker, count)}
	for i := range p.workers {
		p.workers[i] = newWorker(config.PanicHandler)
	}
	return p
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}

// RegisterTaskProvider adds the provider to the pool's registry.
func (p *Pool) RegisterTaskProvider(pr Provider) {
	p.providers.Add(pr)
}

// UnregisterTaskProvider removes the provider from the registry, blocking
// until no worker is mid-call into it.
func (p *Pool) UnregisterTaskProvider(pr Provider) {
	p.providers.Remove(pr)
}

// TaskProviderDidReceiveNewTask attempts to dispatch: the first idle worker
// is claimed and handed the provider registry. No-op when all workers are
// busy.
func (p *Pool) TaskProviderDidReceiveNewTask() {
	for _, w := range p.workers {
		if w.TryExecute(&p.providers) {
			return
		}
	}
}

// Shutdown stops every worker and waits for their goroutines to exit.
// Queues and streams bound to the pool must be closed before the pool is
// shut down; the registry is expected to be empty at this point. Idempotent.
func (p *Pool) Shutdown() {
	p.shutdownOnce.Do(func() {
		for _, w := range p.workers {
			w.Shutdown()
		}
	})
}
