package execution

import (
	"sync"
	"sync/atomic"

	"github.com/vnykmshr/execflow/pkg/common/errors"
)

// Queue is a typed FIFO bound to a delegate. Each pushed value is delivered
// to the executee exactly once, on some worker, in push order. The executee
// receives a should-cancel flag that turns true while the queue is closing;
// long-running executees should check it and return early.
type Queue[T any] struct {
	delegate Delegate
	executee func(canceled *atomic.Bool, value T)

	mu       sync.Mutex
	idle     *sync.Cond
	values   []T
	inflight int
	closed   bool

	canceled atomic.Bool
}

// NewQueue creates a queue bound to the delegate and registers it as a task
// provider. The queue must be closed with Close before the delegate is shut
// down.
func NewQueue[T any](d Delegate, executee func(canceled *atomic.Bool, value T)) *Queue[T] {
	q := &Queue[T]{
		delegate: d,
		executee: executee,
	}
	q.idle = sync.NewCond(&q.mu)
	d.RegisterTaskProvider(q)
	return q
}

// Push appends the value to the queue and hints the delegate. It returns
// immediately; delivery is asynchronous. Pushes racing from multiple
// goroutines are ordered by the commit order of the queue mutex. Returns
// ErrClosed once the queue has been closed.
func (q *Queue[T]) Push(value T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return errors.ErrClosed
	}
	q.values = append(q.values, value)
	q.mu.Unlock()

	q.delegate.TaskProviderDidReceiveNewTask()
	return nil
}

// Len returns the number of buffered values not yet handed to a worker.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.values)
}

// NextTask implements Provider. It pops the head value and wraps it in a
// task that invokes the executee with the queue's should-cancel flag.
func (q *Queue[T]) NextTask() Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed || len(q.values) == 0 {
		return Task{}
	}
	value := q.values[0]
	q.values = q.values[1:]
	q.inflight++
	return NewTask(func() {
		defer q.taskDone()
		q.executee(&q.canceled, value)
	})
}

func (q *Queue[T]) taskDone() {
	q.mu.Lock()
	q.inflight--
	if q.inflight == 0 {
		q.idle.Broadcast()
	}
	q.mu.Unlock()
}

// Close detaches the queue from its delegate and drains it: no new task is
// pulled from the queue, the should-cancel flag is raised, and Close blocks
// until every in-flight executee invocation has returned. Buffered values
// that were never handed to a worker are dropped without invoking the
// executee. Idempotent; concurrent calls all block until the drain is done.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	alreadyClosed := q.closed
	q.closed = true
	q.mu.Unlock()

	if !alreadyClosed {
		// Unregister first so no worker pulls another task from this
		// queue, then raise the flag for executions already running.
		q.delegate.UnregisterTaskProvider(q)
		q.canceled.Store(true)
	}

	q.mu.Lock()
	for q.inflight > 0 {
		q.idle.Wait()
	}
	q.values = nil
	q.mu.Unlock()
}
