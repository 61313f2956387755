package execution

import (
	"sync"
	"sync/atomic"
)

// Stream is an open-ended, self-feeding producer: once started, every
// iteration that completes schedules another attempt, so idle pool workers
// pick up iterations for as long as the stream runs. A dedicated additional
// worker owned by the stream guarantees forward progress even when every
// pool worker is saturated by other providers.
//
// Iterations may run on several workers at once; the executee must be
// reentrant.
type Stream struct {
	delegate Delegate
	executee func(quit *atomic.Bool)

	quit    atomic.Bool
	started atomic.Bool

	mu      sync.Mutex
	settled *sync.Cond
	running int

	additional *Worker
}

// NewStream creates a stream bound to the delegate. The executee is invoked
// repeatedly between Start and Stop; it must return promptly once the quit
// flag turns true. The stream owns one extra worker whose goroutine lives
// until Close.
func NewStream(d Delegate, executee func(quit *atomic.Bool)) *Stream {
	s := &Stream{
		delegate:   d,
		executee:   executee,
		additional: NewWorker(),
	}
	s.settled = sync.NewCond(&s.mu)
	return s
}

// Start begins the self-feeding iteration cycle: the stream registers as a
// task provider, hints the delegate, and primes its additional worker.
// No-op on a stream that is already running.
func (s *Stream) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	s.quit.Store(false)
	s.delegate.RegisterTaskProvider(s)
	s.delegate.TaskProviderDidReceiveNewTask()
	s.additional.TryExecute(s)
}

// Stop raises the quit flag, waits for every in-flight iteration to return,
// and detaches the stream from its delegate. After Stop returns, no
// iteration is running and none will start. No-op on a stopped stream.
func (s *Stream) Stop() {
	if !s.started.CompareAndSwap(true, false) {
		return
	}
	s.quit.Store(true)

	s.mu.Lock()
	for s.running > 0 {
		s.settled.Wait()
	}
	s.mu.Unlock()

	s.delegate.UnregisterTaskProvider(s)
}

// Close stops the stream and releases the additional worker. The stream
// must not be restarted afterwards.
func (s *Stream) Close() {
	s.Stop()
	s.additional.Shutdown()
}

// NextTask implements Provider. While the stream is running it always has
// work: every call yields one iteration task. Once the quit flag is raised
// or the stream is stopped it yields invalid tasks.
func (s *Stream) NextTask() Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started.Load() || s.quit.Load() {
		return Task{}
	}
	s.running++
	return NewTask(s.iterate)
}

// iterate runs one invocation of the executee and then schedules the next
// attempt on both the pool and the additional worker.
func (s *Stream) iterate() {
	defer s.iterationDone()
	s.executee(&s.quit)
}

func (s *Stream) iterationDone() {
	s.mu.Lock()
	s.running--
	if s.running == 0 {
		s.settled.Broadcast()
	}
	s.mu.Unlock()

	if s.quit.Load() {
		return
	}
	s.delegate.TaskProviderDidReceiveNewTask()
	s.additional.TryExecute(s)
}
