package threadpool

import (
	"context"
	"testing"
	"time"
)

// TestWrappers_NewPool tests the root-package constructors
// Given: the re-exported New and NewWithConfig
// When: a pool is created and a task pushed through root-package types
// Then: the aliases interoperate with the core implementation
func TestWrappers_NewPool(t *testing.T) {
	config := DefaultConfig()
	config.ID = "wrapper-pool"
	pool, err := NewWithConfig(2, config)
	if err != nil {
		t.Fatalf("NewWithConfig failed: %v", err)
	}
	defer pool.Shutdown()

	if pool.ID() != "wrapper-pool" {
		t.Errorf("ID() = %q, want %q", pool.ID(), "wrapper-pool")
	}

	task := NewTask(func(ctx context.Context) error { return nil })
	if err := pool.Push(task); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if !task.Wait(5 * time.Second) {
		t.Fatal("Wait timed out")
	}
}

// TestWrappers_Semaphore tests the re-exported semaphore
func TestWrappers_Semaphore(t *testing.T) {
	sem := NewSemaphore(1)

	if !sem.TryWait() {
		t.Error("TryWait() = false, want true")
	}
	if sem.TryWait() {
		t.Error("TryWait() = true on exhausted semaphore, want false")
	}
	sem.Post()
	if !sem.Wait(time.Second) {
		t.Error("Wait() = false after Post, want true")
	}
}

// TestWrappers_WithRetry tests the re-exported retry helper
func TestWrappers_WithRetry(t *testing.T) {
	calls := 0
	fn := WithRetry(func(ctx context.Context) error {
		calls++
		return nil
	}, RetryPolicy{MaxRetries: 2})

	if err := fn(context.Background()); err != nil {
		t.Fatalf("fn() = %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
