package core

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/gammazero/deque"
)

var (
	// ErrNoWorkers reports a pool construction with a non-positive worker count.
	ErrNoWorkers = errors.New("threadpool: worker count must be positive")

	// ErrPoolShutDown reports a push to a pool whose shutdown has begun.
	ErrPoolShutDown = errors.New("threadpool: pool is shut down")
)

// =============================================================================
// SlaveThread: one worker bound to a pool
// =============================================================================

// SlaveThread is a single worker bound to one pool for its whole lifetime.
//
// Each worker pins itself to an OS thread, so task execution is genuinely
// parallel OS-thread work and bodies that rely on thread affinity (cgo,
// thread-local C state) behave as expected.
type SlaveThread struct {
	pool   *ThreadPool
	id     int
	cancel bool          // set once during pool shutdown; guarded by the pool mutex
	done   chan struct{} // closed when the worker has exited
}

func newSlaveThread(p *ThreadPool, id int) *SlaveThread {
	s := &SlaveThread{pool: p, id: id, done: make(chan struct{})}
	go s.main()
	return s
}

// ID returns the worker's index within its pool.
func (s *SlaveThread) ID() int {
	return s.id
}

// main is the worker loop: wait for the queue to be non-empty or for
// cancellation, pop the front task, execute it.
func (s *SlaveThread) main() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(s.done)

	p := s.pool
	p.logger.Debug("worker started", F("pool", p.id), F("worker", s.id))

	for {
		p.m.Lock()
		for p.queue.Len() == 0 && !s.cancel {
			p.cond.Wait(0)
		}
		if s.cancel {
			p.m.Unlock()
			p.logger.Debug("worker exiting", F("pool", p.id), F("worker", s.id))
			return
		}
		task := p.queue.PopFront()
		p.queued.Add(-1)
		p.m.Unlock()

		s.execute(task)
	}
}

// execute publishes the running transition, runs the task body outside any
// lock, then publishes completion. This unlocked stretch is the only place a
// worker holds no lock, and it may take arbitrary time.
func (s *SlaveThread) execute(t *Task) {
	p := s.pool
	p.active.Add(1)
	t.markRunning()

	ctx := withTaskContext(p.baseCtx, s.id, t)
	started := time.Now()
	err := s.invoke(ctx, t)
	finished := time.Now()

	t.markCompleted(err)
	p.active.Add(-1)

	var pe *PanicError
	panicked := errors.As(err, &pe)
	p.metrics.RecordTaskDuration(p.id, s.id, finished.Sub(started))
	p.history.add(TaskExecutionRecord{
		PoolID:     p.id,
		WorkerID:   s.id,
		StartedAt:  started,
		FinishedAt: finished,
		Duration:   finished.Sub(started),
		Panicked:   panicked,
		Failed:     err != nil,
	})
}

// invoke runs the task body behind the panic boundary. A panic must never
// kill the worker: that would silently shrink pool capacity.
func (s *SlaveThread) invoke(ctx context.Context, t *Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			err = &PanicError{Value: r, Stack: stack}
			p := s.pool
			p.metrics.RecordTaskPanic(p.id)
			p.panicHandler.HandlePanic(ctx, p.id, s.id, r, stack)
		}
	}()
	return t.fn(ctx)
}

// join blocks until the worker's loop has actually terminated.
func (s *SlaveThread) join() {
	<-s.done
}

// =============================================================================
// ThreadPool: fixed set of workers plus a FIFO queue of pending tasks
// =============================================================================

// ThreadPool owns a fixed collection of SlaveThreads and a FIFO queue of
// pending tasks. Producers call Push; an idle worker wakes, dequeues, runs
// the body, and notifies anyone waiting on that task.
//
// The queue holds borrowed references only: the pool never outlives them
// because Shutdown drains the queue before cancelling the workers.
type ThreadPool struct {
	id     string
	m      Mutex
	cond   *Cond
	queue  deque.Deque[*Task]
	slaves []*SlaveThread

	delay *delayManager

	queued atomic.Int32
	active atomic.Int32

	logger       Logger
	panicHandler PanicHandler
	metrics      Metrics
	rejected     RejectedTaskHandler
	history      *executionHistory

	// baseCtx is the root of every task context. It is never cancelled: a
	// running task is never forcibly interrupted, not even by Shutdown.
	baseCtx context.Context

	shutdown bool // guarded by m
}

// New constructs a pool with the given fixed worker count.
func New(workers int) (*ThreadPool, error) {
	return NewWithConfig(workers, DefaultConfig())
}

// NewWithConfig constructs a pool with the given worker count and config.
// The workers start immediately and live until Shutdown.
func NewWithConfig(workers int, config *Config) (*ThreadPool, error) {
	if workers <= 0 {
		return nil, ErrNoWorkers
	}
	if config == nil {
		config = DefaultConfig()
	}

	p := &ThreadPool{
		id:           config.ID,
		logger:       config.Logger,
		panicHandler: config.PanicHandler,
		metrics:      config.Metrics,
		rejected:     config.RejectedTaskHandler,
		baseCtx:      context.Background(),
	}
	if p.id == "" {
		p.id = fmt.Sprintf("pool-%d", workers)
	}
	if p.logger == nil {
		p.logger = NewDefaultLogger()
	}
	if p.panicHandler == nil {
		p.panicHandler = &DefaultPanicHandler{}
	}
	if p.metrics == nil {
		p.metrics = &NilMetrics{}
	}
	if p.rejected == nil {
		p.rejected = &DefaultRejectedTaskHandler{}
	}
	p.cond = NewCond(&p.m)
	p.history = newExecutionHistory(config.HistoryCapacity)
	p.delay = newDelayManager(p)

	for i := 0; i < workers; i++ {
		p.slaves = append(p.slaves, newSlaveThread(p, i))
	}
	p.logger.Info("pool started", F("pool", p.id), F("workers", workers))
	return p, nil
}

// Push enqueues a task for execution, waking one idle worker. The task's
// flags are reset first. The caller retains ownership and must not destroy or
// re-push the task until it observes Completed.
//
// Pushes are FIFO relative to each other; producers racing to push are
// ordered by whichever acquires the pool lock first.
func (p *ThreadPool) Push(t *Task) error {
	t.Reset()

	p.m.Lock()
	if p.shutdown {
		p.m.Unlock()
		p.rejected.HandleRejectedTask(p.id, "shut down")
		p.metrics.RecordTaskRejected(p.id, "shut down")
		return ErrPoolShutDown
	}
	p.queue.PushBack(t)
	depth := int(p.queued.Add(1))
	p.cond.Signal()
	p.m.Unlock()

	p.metrics.RecordQueueDepth(p.id, depth)
	return nil
}

// PushDelayed enqueues a task to be pushed after the given delay. A delay
// <= 0 pushes immediately.
func (p *ThreadPool) PushDelayed(t *Task, delay time.Duration) error {
	if delay <= 0 {
		return p.Push(t)
	}

	p.m.Lock()
	if p.shutdown {
		p.m.Unlock()
		p.rejected.HandleRejectedTask(p.id, "shut down")
		p.metrics.RecordTaskRejected(p.id, "shut down")
		return ErrPoolShutDown
	}
	p.m.Unlock()

	p.delay.add(t, delay)
	return nil
}

// Shutdown performs an orderly teardown:
//
//  1. Stop the delay manager (pending delayed tasks are dropped).
//  2. While the queue is non-empty, wait for the last queued task to have at
//     least started running. This guarantees no task is abandoned unseen.
//  3. Mark every worker cancelled, broadcast so idle workers observe it, and
//     join each worker.
//
// A task already executing is never interrupted; Shutdown only guarantees
// queued tasks have started, not finished. Callers needing full completion
// wait on each task's Completed flag separately. Shutdown is idempotent.
func (p *ThreadPool) Shutdown() {
	p.delay.stop()

	p.m.Lock()
	if p.shutdown {
		p.m.Unlock()
		return
	}
	p.shutdown = true
	p.logger.Info("pool shutting down", F("pool", p.id), F("queued", p.queue.Len()))

	for p.queue.Len() > 0 {
		last := p.queue.Back()
		p.m.Unlock()
		last.WaitStarted(0)
		p.m.Lock()
	}

	for _, s := range p.slaves {
		s.cancel = true
	}
	p.cond.Broadcast()
	p.m.Unlock()

	for _, s := range p.slaves {
		s.join()
	}
	p.logger.Info("pool stopped", F("pool", p.id))
}

// ID returns the pool identifier used in logs and metrics.
func (p *ThreadPool) ID() string {
	return p.id
}

// WorkerCount returns the fixed number of workers.
func (p *ThreadPool) WorkerCount() int {
	return len(p.slaves)
}

// QueuedTaskCount returns the number of tasks waiting in the queue.
func (p *ThreadPool) QueuedTaskCount() int {
	return int(p.queued.Load())
}

// ActiveTaskCount returns the number of tasks currently executing.
func (p *ThreadPool) ActiveTaskCount() int {
	return int(p.active.Load())
}

// DelayedTaskCount returns the number of tasks waiting on their delay.
func (p *ThreadPool) DelayedTaskCount() int {
	return p.delay.taskCount()
}

// IsRunning reports whether the pool still accepts pushes.
func (p *ThreadPool) IsRunning() bool {
	p.m.Lock()
	running := !p.shutdown
	p.m.Unlock()
	return running
}

// Stats returns a point-in-time snapshot of the pool's state.
func (p *ThreadPool) Stats() PoolStats {
	return PoolStats{
		ID:      p.id,
		Workers: p.WorkerCount(),
		Queued:  p.QueuedTaskCount(),
		Active:  p.ActiveTaskCount(),
		Delayed: p.DelayedTaskCount(),
		Running: p.IsRunning(),
	}
}

// History returns up to limit recent execution records, most recent first.
func (p *ThreadPool) History(limit int) []TaskExecutionRecord {
	return p.history.recent(limit)
}
