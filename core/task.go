package core

import (
	"context"
	"fmt"
	"time"
)

// Func is the unit of work executed by a worker. The context carries the
// worker identity and the executing task (see CurrentWorkerID and
// CurrentTask) and is the cooperative cancellation surface for long-running
// bodies.
type Func func(ctx context.Context) error

// Runnable is the interface form of Func for work implemented as a method on
// a caller-owned object.
type Runnable interface {
	Main(ctx context.Context) error
}

// Task is a schedulable, waitable unit of work.
//
// A task moves Idle -> Running -> Completed; Reset returns it to Idle before
// re-queueing. Transitions are performed only by the executing worker, under
// the task's own lock, each followed by a broadcast so that goroutines
// blocked in Wait or WaitStarted observe them.
//
// The caller owns the task and must keep it alive (and not re-push it) until
// it observes Completed. The pool only borrows a reference while the task is
// queued.
type Task struct {
	m    Mutex
	cond *Cond
	fn   Func

	running   bool
	completed bool
	err       error
}

// NewTask wraps fn into a task.
func NewTask(fn Func) *Task {
	t := &Task{fn: fn}
	t.cond = NewCond(&t.m)
	return t
}

// NewRunnableTask wraps a Runnable into a task.
func NewRunnableTask(r Runnable) *Task {
	return NewTask(r.Main)
}

// Reset clears the running/completed flags and any recorded error so the
// task can be pushed again. Resetting a task that is still queued or running
// is caller error.
func (t *Task) Reset() {
	t.m.Lock()
	t.running = false
	t.completed = false
	t.err = nil
	t.m.Unlock()
}

// Running reports whether a worker is currently executing the task.
func (t *Task) Running() bool {
	t.m.Lock()
	r := t.running
	t.m.Unlock()
	return r
}

// Completed reports whether the task has finished executing.
func (t *Task) Completed() bool {
	t.m.Lock()
	c := t.completed
	t.m.Unlock()
	return c
}

// Err returns the error recorded by the last execution, if any. A panic in
// the task body surfaces here as a *PanicError.
func (t *Task) Err() error {
	t.m.Lock()
	err := t.err
	t.m.Unlock()
	return err
}

// Wait blocks until the task has completed or the timeout elapses. A timeout
// <= 0 waits indefinitely. Returns false only on timeout.
func (t *Task) Wait(timeout time.Duration) bool {
	t.m.Lock()
	defer t.m.Unlock()
	for !t.completed {
		if !t.cond.Wait(timeout) {
			return false
		}
	}
	return true
}

// WaitStarted blocks until the task has at least started running (or has
// already completed) or the timeout elapses. A timeout <= 0 waits
// indefinitely. Returns false only on timeout.
//
// The pool's shutdown drain is built on this: it guarantees queued tasks have
// been observed by a worker, not that they have finished.
func (t *Task) WaitStarted(timeout time.Duration) bool {
	t.m.Lock()
	defer t.m.Unlock()
	for !t.running && !t.completed {
		if !t.cond.Wait(timeout) {
			return false
		}
	}
	return true
}

// markRunning publishes the Idle -> Running transition. Called only by the
// executing worker.
func (t *Task) markRunning() {
	t.m.Lock()
	t.running = true
	t.cond.Broadcast()
	t.m.Unlock()
}

// markCompleted publishes the Running -> Completed transition. Called only
// by the executing worker, even when the body failed, so waiters are never
// stranded.
func (t *Task) markCompleted(err error) {
	t.m.Lock()
	t.running = false
	t.completed = true
	t.err = err
	t.cond.Broadcast()
	t.m.Unlock()
}

// PanicError records a panic recovered from a task body together with the
// stack at the point of the panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}
