package threadpool

import "github.com/threading-go/threadpool/core"

// Re-export commonly used types from core package for convenience.
// This allows users to import only the threadpool package for most use cases.

// Task is the unit of work; a lockable, waitable object
type Task = core.Task

// Func is the task body signature
type Func = core.Func

// Runnable is the interface form of a task body
type Runnable = core.Runnable

// ThreadPool is the execution engine
type ThreadPool = core.ThreadPool

// SlaveThread is one worker bound to a pool
type SlaveThread = core.SlaveThread

// Mutex is the ownership-checked exclusive lock
type Mutex = core.Mutex

// Cond is a condition variable with timed wait
type Cond = core.Cond

// Semaphore is the counting semaphore
type Semaphore = core.Semaphore

// Config holds pool configuration
type Config = core.Config

// PoolStats is a point-in-time pool snapshot
type PoolStats = core.PoolStats

// PanicError records a panic recovered from a task body
type PanicError = core.PanicError

// RetryPolicy defines retry behavior for task bodies
type RetryPolicy = core.RetryPolicy

// Sentinel errors
var (
	ErrMutexNotOwned = core.ErrMutexNotOwned
	ErrNoWorkers     = core.ErrNoWorkers
	ErrPoolShutDown  = core.ErrPoolShutDown
)

// Constructors and helpers re-exported from core
var (
	NewTask            = core.NewTask
	NewRunnableTask    = core.NewRunnableTask
	NewCond            = core.NewCond
	NewSemaphore       = core.NewSemaphore
	DefaultConfig      = core.DefaultConfig
	WithRetry          = core.WithRetry
	DefaultRetryPolicy = core.DefaultRetryPolicy
	NoRetry            = core.NoRetry
	CurrentTask        = core.CurrentTask
	CurrentWorkerID    = core.CurrentWorkerID
)

// New creates a pool with the given fixed worker count.
func New(workers int) (*ThreadPool, error) {
	return core.New(workers)
}

// NewWithConfig creates a pool with the given worker count and config.
func NewWithConfig(workers int, config *Config) (*ThreadPool, error) {
	return core.NewWithConfig(workers, config)
}
