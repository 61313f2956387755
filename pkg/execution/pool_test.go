package execution

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnykmshr/execflow/internal/testutil"
)

func TestNewPool(t *testing.T) {
	pool := NewPool()
	defer pool.Shutdown()

	assert.GreaterOrEqual(t, pool.Size(), 1)
}

func TestNewPoolWithConfig(t *testing.T) {
	pool := NewPoolWithConfig(Config{WorkerCount: 3})
	defer pool.Shutdown()

	assert.Equal(t, 3, pool.Size())
}

func TestNewPoolNegativeWorkerCountPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewPoolWithConfig(Config{WorkerCount: -1})
	})
}

func TestPoolDispatchesToIdleWorker(t *testing.T) {
	pool := NewPoolWithConfig(Config{WorkerCount: 2})
	defer pool.Shutdown()

	var executed atomic.Int32
	served := atomic.Bool{}
	provider := providerOf(func() Task {
		if !served.CompareAndSwap(false, true) {
			return Task{}
		}
		return NewTask(func() { executed.Add(1) })
	})

	pool.RegisterTaskProvider(provider)
	defer pool.UnregisterTaskProvider(provider)

	pool.TaskProviderDidReceiveNewTask()

	testutil.Eventually(t, func() bool {
		return executed.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestPoolNotifyWithAllWorkersBusy(t *testing.T) {
	pool := NewPoolWithConfig(Config{WorkerCount: 1})
	defer pool.Shutdown()

	blocking := newBlockingProvider()
	pool.RegisterTaskProvider(blocking)
	pool.TaskProviderDidReceiveNewTask()
	<-blocking.started

	// every worker is busy; the hint must be dropped without blocking
	pool.TaskProviderDidReceiveNewTask()

	pool.UnregisterTaskProvider(blocking)
	close(blocking.release)
}

func TestPoolBusyWorkerRepollsRegistryAfterDrain(t *testing.T) {
	pool := NewPoolWithConfig(Config{WorkerCount: 1})
	defer pool.Shutdown()

	// the lone worker is parked inside the first provider's task when the
	// second provider's work arrives; the hint finds no idle worker, so
	// delivery relies on the worker re-polling the registry
	blocking := newBlockingProvider()
	pool.RegisterTaskProvider(blocking)
	pool.TaskProviderDidReceiveNewTask()
	<-blocking.started

	var executed atomic.Int32
	served := atomic.Bool{}
	second := providerOf(func() Task {
		if !served.CompareAndSwap(false, true) {
			return Task{}
		}
		return NewTask(func() { executed.Add(1) })
	})
	pool.RegisterTaskProvider(second)
	pool.TaskProviderDidReceiveNewTask()

	close(blocking.release)

	testutil.Eventually(t, func() bool {
		return executed.Load() == 1
	}, time.Second, 5*time.Millisecond)

	pool.UnregisterTaskProvider(blocking)
	pool.UnregisterTaskProvider(second)
}

func TestPoolPanicHandler(t *testing.T) {
	var recovered atomic.Value
	pool := NewPoolWithConfig(Config{
		WorkerCount:  1,
		PanicHandler: func(r any) { recovered.Store(r) },
	})
	defer pool.Shutdown()

	queue := NewQueue(pool, func(canceled *atomic.Bool, value string) {
		panic(value)
	})
	defer queue.Close()

	require.NoError(t, queue.Push("boom"))

	testutil.Eventually(t, func() bool {
		return recovered.Load() != nil
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "boom", recovered.Load())
}

func TestPoolShutdownIdempotent(t *testing.T) {
	pool := NewPool()
	pool.Shutdown()
	pool.Shutdown()
}
