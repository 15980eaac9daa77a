package core

import (
	"context"
	"time"
)

// FuncWithResult is a task body that produces a value of type T.
type FuncWithResult[T any] func(ctx context.Context) (T, error)

// FutureTask pairs a Task with a typed result slot.
//
// The value is written by the task body before the task's completed flag is
// published under the task lock, so a successful Result call always observes
// the final value (happens-before via markCompleted).
type FutureTask[T any] struct {
	task  *Task
	value T
}

// NewFutureTask wraps fn into a task whose result can be retrieved with
// Result once the task has been pushed and has completed.
func NewFutureTask[T any](fn FuncWithResult[T]) *FutureTask[T] {
	f := &FutureTask[T]{}
	f.task = NewTask(func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		f.value = v
		return nil
	})
	return f
}

// Task returns the underlying task to hand to ThreadPool.Push.
func (f *FutureTask[T]) Task() *Task {
	return f.task
}

// Result blocks until the task has completed or the timeout elapses. ok is
// false only on timeout. After ok, err carries the task body's error (or a
// *PanicError) and the value is meaningful only when err is nil.
func (f *FutureTask[T]) Result(timeout time.Duration) (value T, err error, ok bool) {
	if !f.task.Wait(timeout) {
		return value, nil, false
	}
	return f.value, f.task.Err(), true
}
