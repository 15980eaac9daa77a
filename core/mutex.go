package core

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrMutexNotOwned reports an unlock of a mutex the caller does not hold.
// This class of misuse is a programming defect, so Unlock panics with it
// instead of returning it.
var ErrMutexNotOwned = errors.New("threadpool: mutex not owned")

// Mutex is an exclusive lock that tracks whether it is currently held.
//
// It deliberately does not support recursive acquisition. Call sites that
// would re-acquire the lock use explicit *Locked entry points instead (see
// Semaphore.PostLocked and friends), which makes the precondition visible in
// the signature rather than in a runtime recursion count.
type Mutex struct {
	mu   sync.Mutex
	held atomic.Bool
}

// Lock acquires the mutex, blocking until it is available.
func (m *Mutex) Lock() {
	m.mu.Lock()
	m.held.Store(true)
}

// TryLock acquires the mutex only if it is immediately available.
func (m *Mutex) TryLock() bool {
	if !m.mu.TryLock() {
		return false
	}
	m.held.Store(true)
	return true
}

// Unlock releases the mutex. Unlocking a mutex that is not held panics with
// ErrMutexNotOwned.
func (m *Mutex) Unlock() {
	if !m.held.Load() {
		panic(ErrMutexNotOwned)
	}
	m.held.Store(false)
	m.mu.Unlock()
}
