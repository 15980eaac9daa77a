package core

import (
	"time"

	"github.com/gammazero/deque"
)

// Cond is a condition variable layered on a Mutex.
//
// Unlike sync.Cond it supports a timed wait. Each waiter registers a
// buffered(1) channel in a FIFO queue while holding the mutex; Signal hands a
// token to the oldest waiter, Broadcast to all of them. Signals are not
// queued: a Signal with no waiters is simply lost, which is why Semaphore
// keeps its own count.
type Cond struct {
	m       *Mutex
	waiters deque.Deque[chan struct{}]
}

// NewCond returns a condition variable bound to m.
func NewCond(m *Mutex) *Cond {
	return &Cond{m: m}
}

// Wait atomically releases the mutex and blocks until the waiter is signaled,
// broadcast, or the timeout elapses; the mutex is re-acquired before
// returning. A timeout <= 0 waits indefinitely. Returns false only on
// timeout.
//
// The caller must hold the associated mutex.
func (c *Cond) Wait(timeout time.Duration) bool {
	ch := make(chan struct{}, 1)
	c.waiters.PushBack(ch)
	c.m.Unlock()

	ok := true
	if timeout <= 0 {
		<-ch
	} else {
		timer := time.NewTimer(timeout)
		select {
		case <-ch:
			timer.Stop()
		case <-timer.C:
			ok = false
		}
	}

	c.m.Lock()
	if !ok {
		select {
		case <-ch:
			// A signal won the race against the timeout. The token was
			// consumed, so report success; dropping it would lose a wake-up.
			ok = true
		default:
			c.removeWaiter(ch)
		}
	}
	return ok
}

// Signal wakes the oldest waiter, if any. The caller must hold the associated
// mutex.
func (c *Cond) Signal() {
	if c.waiters.Len() > 0 {
		c.waiters.PopFront() <- struct{}{}
	}
}

// Broadcast wakes every waiter. The caller must hold the associated mutex.
func (c *Cond) Broadcast() {
	for c.waiters.Len() > 0 {
		c.waiters.PopFront() <- struct{}{}
	}
}

func (c *Cond) removeWaiter(ch chan struct{}) {
	i := c.waiters.Index(func(w chan struct{}) bool { return w == ch })
	if i >= 0 {
		c.waiters.Remove(i)
	}
}
