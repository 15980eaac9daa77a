// Package threadpool provides a bounded task-queue thread pool built from
// explicit synchronization primitives.
//
// The engine is a fixed set of worker threads (SlaveThread) pulling from a
// FIFO queue of caller-owned tasks, coordinated by a small family of
// primitives: an ownership-checked Mutex, a Cond with timed wait, and a
// counting Semaphore. Tasks are themselves waitable objects, so producers can
// block until a specific task has started or completed.
//
// # Quick Start
//
// Initialize the global thread pool at application startup:
//
//	threadpool.InitGlobalThreadPool(4) // 4 workers
//	defer threadpool.ShutdownGlobalThreadPool()
//
// Push a task and wait for its completion:
//
//	task := threadpool.NewTask(func(ctx context.Context) error {
//		// Your code here
//		return nil
//	})
//	pool := threadpool.GetGlobalThreadPool()
//	pool.Push(task)
//	task.Wait(0) // block until completed
//
// # Key Concepts
//
// Task: a unit of work that is also lockable/waitable. The caller owns the
// task and must keep it alive until it observes Completed; the pool only
// borrows a reference while the task is queued.
//
// ThreadPool: the execution engine. Push order is FIFO; completion order is
// not guaranteed, because multiple workers run concurrently. Shutdown drains
// the queue (every queued task at least starts) before cancelling workers.
//
// Semaphore: a counting semaphore whose count persists posted signals, built
// on the same Mutex/Cond pair the pool uses internally.
//
// # Error Handling
//
// A panic inside a task body never kills the worker: it is recovered,
// recorded on the task as a *PanicError, and the task still completes so
// waiters are never left blocked. Timeouts are boolean returns, never errors.
//
// # Example
//
//	import (
//		"context"
//
//		threadpool "github.com/threading-go/threadpool"
//	)
//
//	func main() {
//		threadpool.InitGlobalThreadPool(4)
//		defer threadpool.ShutdownGlobalThreadPool()
//
//		pool := threadpool.GetGlobalThreadPool()
//
//		tasks := make([]*threadpool.Task, 8)
//		for i := range tasks {
//			tasks[i] = threadpool.NewTask(func(ctx context.Context) error {
//				return nil
//			})
//			pool.Push(tasks[i])
//		}
//		for _, t := range tasks {
//			t.Wait(0)
//		}
//	}
package threadpool
