package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestFutureTask_Result tests retrieving a value from a completed future
// Given: a future task computing a string
// When: pushed to a pool and Result is called
// Then: the computed value is returned with a nil error
func TestFutureTask_Result(t *testing.T) {
	pool := newTestPool(t, 2)
	defer pool.Shutdown()

	future := NewFutureTask(func(ctx context.Context) (string, error) {
		return "hello", nil
	})

	if err := pool.Push(future.Task()); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	value, err, ok := future.Result(5 * time.Second)
	if !ok {
		t.Fatal("Result timed out")
	}
	if err != nil {
		t.Fatalf("Result error = %v, want nil", err)
	}
	if value != "hello" {
		t.Errorf("Result value = %q, want %q", value, "hello")
	}
}

// TestFutureTask_Error tests error propagation through a future
// Given: a future task whose body fails
// When: Result is called after completion
// Then: the body's error is returned
func TestFutureTask_Error(t *testing.T) {
	pool := newTestPool(t, 1)
	defer pool.Shutdown()

	failure := errors.New("compute failed")
	future := NewFutureTask(func(ctx context.Context) (int, error) {
		return 0, failure
	})

	if err := pool.Push(future.Task()); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	_, err, ok := future.Result(5 * time.Second)
	if !ok {
		t.Fatal("Result timed out")
	}
	if !errors.Is(err, failure) {
		t.Errorf("Result error = %v, want %v", err, failure)
	}
}

// TestFutureTask_Timeout tests the bounded result wait
// Given: a future task that was never pushed
// When: Result is called with a short timeout
// Then: ok is false
func TestFutureTask_Timeout(t *testing.T) {
	future := NewFutureTask(func(ctx context.Context) (int, error) {
		return 42, nil
	})

	_, _, ok := future.Result(50 * time.Millisecond)
	if ok {
		t.Error("Result ok = true for an unscheduled future, want false")
	}
}
