package core

import "time"

// Semaphore is a counting semaphore built from a Mutex and a Cond.
//
// The count persists posted signals, unlike Cond where a signal with no
// waiters is lost. Every operation exists in two forms: the plain form
// acquires the embedded mutex internally, while the *Locked form assumes the
// caller already holds it (via Lock) and leaves it held.
type Semaphore struct {
	m       Mutex
	cond    *Cond
	count   int
	waiters int
}

// NewSemaphore returns a semaphore with the given initial resource count.
func NewSemaphore(initial int) *Semaphore {
	s := &Semaphore{count: initial}
	s.cond = NewCond(&s.m)
	return s
}

// Lock acquires the embedded mutex so that several *Locked operations can be
// composed into one critical section.
func (s *Semaphore) Lock() {
	s.m.Lock()
}

// Unlock releases the embedded mutex.
func (s *Semaphore) Unlock() {
	s.m.Unlock()
}

// Post releases one resource, waking a single waiter if any are blocked.
func (s *Semaphore) Post() {
	s.m.Lock()
	s.PostLocked()
	s.m.Unlock()
}

// PostLocked is Post for callers already holding the mutex.
func (s *Semaphore) PostLocked() {
	s.count++
	// The count itself persists the signal, so only wake someone when a
	// waiter exists to consume it.
	if s.waiters > 0 {
		s.cond.Signal()
	}
}

// TryWait acquires one resource if immediately available. It never blocks.
func (s *Semaphore) TryWait() bool {
	s.m.Lock()
	ok := s.TryWaitLocked()
	s.m.Unlock()
	return ok
}

// TryWaitLocked is TryWait for callers already holding the mutex.
func (s *Semaphore) TryWaitLocked() bool {
	if s.count <= 0 {
		return false
	}
	s.count--
	return true
}

// Wait blocks until a resource can be acquired or the timeout elapses. A
// timeout <= 0 waits indefinitely. Returns false only on timeout.
func (s *Semaphore) Wait(timeout time.Duration) bool {
	s.m.Lock()
	ok := s.WaitLocked(timeout)
	s.m.Unlock()
	return ok
}

// WaitLocked is Wait for callers already holding the mutex. Spurious
// wake-ups are absorbed by re-checking the count.
func (s *Semaphore) WaitLocked(timeout time.Duration) bool {
	s.waiters++
	ok := true
	for s.count <= 0 && ok {
		ok = s.cond.Wait(timeout)
	}
	if ok {
		s.count--
	}
	s.waiters--
	return ok
}

// Count returns the current resource count.
func (s *Semaphore) Count() int {
	s.m.Lock()
	n := s.count
	s.m.Unlock()
	return n
}
