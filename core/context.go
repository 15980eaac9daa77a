package core

import "context"

// The pool annotates each task's context with the worker identity and the
// executing task. This is the goroutine-friendly replacement for thread-local
// storage: Go deliberately has no per-goroutine storage, so values that would
// live in TLS travel with the context instead.

type workerIDKeyType struct{}
type taskKeyType struct{}

var (
	workerIDKey workerIDKeyType
	taskKey     taskKeyType
)

// withTaskContext binds the worker ID and task to ctx for the duration of one
// execution.
func withTaskContext(ctx context.Context, workerID int, t *Task) context.Context {
	ctx = context.WithValue(ctx, workerIDKey, workerID)
	return context.WithValue(ctx, taskKey, t)
}

// CurrentWorkerID returns the ID of the worker executing the current task.
// ok is false when ctx does not originate from a pool worker.
func CurrentWorkerID(ctx context.Context) (id int, ok bool) {
	id, ok = ctx.Value(workerIDKey).(int)
	return id, ok
}

// CurrentTask returns the task being executed on this context, or nil when
// ctx does not originate from a pool worker.
func CurrentTask(ctx context.Context) *Task {
	if t, ok := ctx.Value(taskKey).(*Task); ok {
		return t
	}
	return nil
}
