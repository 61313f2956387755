package execution

import "sync"

// Worker is a single parked goroutine that executes tasks drawn from a
// provider. TryExecute claims an idle worker and hands it a provider; the
// worker drains the provider until it yields an invalid task, then parks
// again waiting for the next claim.
type Worker struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending Provider
	busy    bool
	quit    bool

	panicHandler func(recovered any)
	done         chan struct{}
}

// NewWorker creates a worker and starts its goroutine. The worker parks
// until TryExecute hands it a provider or Shutdown is called.
func NewWorker() *Worker {
	return newWorker(nil)
}

func newWorker(panicHandler func(recovered any)) *Worker {
	w := &Worker{
		panicHandler: panicHandler,
		done:         make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	go w.run()
	return w
}

// TryExecute hands the provider to the worker if it is idle. It returns
// false exactly when the worker is already draining a provider or has been
// shut down. The check and the claim are a single atomic step.
func (w *Worker) TryExecute(p Provider) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy || w.quit {
		return false
	}
	w.busy = true
	w.pending = p
	w.cond.Signal()
	return true
}

// Shutdown wakes the worker, lets the current drain finish, and waits for
// the goroutine to exit. Idempotent.
func (w *Worker) Shutdown() {
	w.mu.Lock()
	w.quit = true
	w.cond.Broadcast()
	w.mu.Unlock()
	<-w.done
}

func (w *Worker) run() {
	defer close(w.done)

	w.mu.Lock()
	for {
		for !w.quit && w.pending == nil {
			w.cond.Wait()
		}
		if w.quit {
			w.mu.Unlock()
			return
		}
		p := w.pending
		w.mu.Unlock()

		w.drain(p)

		w.mu.Lock()
		w.pending = nil
		w.busy = false
		w.cond.Broadcast()
	}
}

// drain runs tasks for as long as the provider keeps producing valid ones.
// Draining a burst in one wakeup avoids a park/claim round-trip per task.
func (w *Worker) drain(p Provider) {
	for {
		task := p.NextTask()
		if !task.Valid() {
			return
		}
		w.runTask(&task)
	}
}

// runTask executes one task, containing any panic from the user executee so
// a failing task cannot take the worker goroutine down with it.
func (w *Worker) runTask(task *Task) {
	defer func() {
		if r := recover(); r != nil && w.panicHandler != nil {
			w.panicHandler(r)
		}
	}()
	task.Run()
}
