package core

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// TestSemaphore_TryWaitEmpty tests non-blocking acquire on an empty semaphore
// Given: a semaphore with count 0
// When: TryWait is called
// Then: it returns false immediately and the count stays 0
func TestSemaphore_TryWaitEmpty(t *testing.T) {
	s := NewSemaphore(0)

	if s.TryWait() {
		t.Error("TryWait() = true on empty semaphore, want false")
	}
	if got := s.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
}

// TestSemaphore_PostPersistsCount tests that the count persists a post
// Given: a semaphore with count 0 and no waiters
// When: Post is called once
// Then: a later TryWait succeeds exactly once, even though no waiter was
// signaled at post time
func TestSemaphore_PostPersistsCount(t *testing.T) {
	s := NewSemaphore(0)

	s.Post()

	if !s.TryWait() {
		t.Error("first TryWait() = false after Post, want true")
	}
	if s.TryWait() {
		t.Error("second TryWait() = true, want false: only one resource was posted")
	}
}

// TestSemaphore_WaitersUnblockOnPosts tests the wait/post protocol
// Given: 5 goroutines blocked in Wait on an empty semaphore
// When: 5 Posts are issued
// Then: all 5 unblock and the final count is exactly 0
func TestSemaphore_WaitersUnblockOnPosts(t *testing.T) {
	// Arrange
	const n = 5
	s := NewSemaphore(0)
	var acquired atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Wait(0) {
				acquired.Add(1)
			}
		}()
	}

	// Wait until every goroutine is blocked in Wait
	waitUntil(t, time.Second, func() bool {
		s.m.Lock()
		w := s.waiters
		s.m.Unlock()
		return w == n
	})

	// Act
	for i := 0; i < n; i++ {
		s.Post()
	}
	wg.Wait()

	// Assert
	if got := acquired.Load(); got != n {
		t.Errorf("acquired = %d, want %d", got, n)
	}
	if got := s.Count(); got != 0 {
		t.Errorf("final Count() = %d, want 0: no underflow or overflow", got)
	}
}

// TestSemaphore_WaitTimeout tests the bounded wait
// Given: a permanently empty semaphore
// When: Wait is called with a 100ms timeout
// Then: it returns false after at least 100ms and does not decrement the count
func TestSemaphore_WaitTimeout(t *testing.T) {
	s := NewSemaphore(0)

	started := time.Now()
	ok := s.Wait(100 * time.Millisecond)
	elapsed := time.Since(started)

	if ok {
		t.Error("Wait() = true on timeout, want false")
	}
	if elapsed < 100*time.Millisecond {
		t.Errorf("Wait returned after %v, want >= 100ms", elapsed)
	}
	if got := s.Count(); got != 0 {
		t.Errorf("Count() = %d after timeout, want 0", got)
	}
}

// TestSemaphore_InitialCount tests construction with resources available
// Given: a semaphore created with count 3
// When: TryWait is called repeatedly
// Then: it succeeds exactly 3 times
func TestSemaphore_InitialCount(t *testing.T) {
	s := NewSemaphore(3)

	got := 0
	for s.TryWait() {
		got++
	}
	if got != 3 {
		t.Errorf("successful TryWait calls = %d, want 3", got)
	}
}

// TestSemaphore_LockedVariants tests composing operations in one critical section
// Given: a semaphore whose mutex is held by the caller
// When: PostLocked, TryWaitLocked and WaitLocked are used
// Then: they operate on the count without re-acquiring the mutex
func TestSemaphore_LockedVariants(t *testing.T) {
	s := NewSemaphore(0)

	s.Lock()
	s.PostLocked()
	s.PostLocked()
	if !s.TryWaitLocked() {
		t.Error("TryWaitLocked() = false, want true")
	}
	if !s.WaitLocked(time.Second) {
		t.Error("WaitLocked() = false, want true: one resource remains")
	}
	if s.TryWaitLocked() {
		t.Error("TryWaitLocked() = true, want false: count exhausted")
	}
	s.Unlock()
}

// TestSemaphore_WaitConsumesExistingResource tests the fast path
// Given: a semaphore with one available resource
// When: Wait is called
// Then: it returns true immediately without blocking
func TestSemaphore_WaitConsumesExistingResource(t *testing.T) {
	s := NewSemaphore(1)

	started := time.Now()
	ok := s.Wait(time.Second)
	elapsed := time.Since(started)

	if !ok {
		t.Error("Wait() = false, want true")
	}
	if elapsed > 100*time.Millisecond {
		t.Errorf("Wait blocked for %v, want immediate return", elapsed)
	}
}
