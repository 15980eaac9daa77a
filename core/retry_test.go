package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestRetryPolicy_CalculateDelay tests backoff arithmetic
// Given: a policy with 100ms initial delay, 2.0 ratio, 500ms cap
// When: delays are computed for successive attempts
// Then: they grow exponentially and cap at MaxDelay
func TestRetryPolicy_CalculateDelay(t *testing.T) {
	policy := RetryPolicy{
		MaxRetries:   5,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     500 * time.Millisecond,
		BackoffRatio: 2.0,
	}

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 500 * time.Millisecond}, // capped
	}
	for _, tc := range cases {
		if got := policy.calculateDelay(tc.attempt); got != tc.want {
			t.Errorf("calculateDelay(%d) = %v, want %v", tc.attempt, got, tc.want)
		}
	}
}

// TestWithRetry_SucceedsAfterRetries tests the retry wrapper
// Given: a body that fails twice then succeeds
// When: wrapped with a 3-retry policy and invoked
// Then: the final result is nil and the body ran 3 times
func TestWithRetry_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	fn := WithRetry(func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, RetryPolicy{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond, BackoffRatio: 2.0})

	if err := fn(context.Background()); err != nil {
		t.Fatalf("fn() = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

// TestWithRetry_ExhaustsRetries tests permanent failure
// Given: a body that always fails
// When: wrapped with a 2-retry policy
// Then: the last error is returned after 3 total attempts
func TestWithRetry_ExhaustsRetries(t *testing.T) {
	failure := errors.New("permanent")
	calls := 0
	fn := WithRetry(func(ctx context.Context) error {
		calls++
		return failure
	}, RetryPolicy{MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond, BackoffRatio: 2.0})

	if err := fn(context.Background()); !errors.Is(err, failure) {
		t.Errorf("fn() = %v, want %v", err, failure)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3 (initial + 2 retries)", calls)
	}
}

// TestWithRetry_ContextCancelled tests backoff abort
// Given: a failing body and an already-cancelled context
// When: the wrapper reaches its backoff sleep
// Then: it returns ctx.Err instead of sleeping
func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fn := WithRetry(func(ctx context.Context) error {
		return errors.New("transient")
	}, RetryPolicy{MaxRetries: 3, InitialDelay: time.Hour, MaxDelay: time.Hour, BackoffRatio: 1.0})

	started := time.Now()
	err := fn(ctx)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("fn() = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(started); elapsed > time.Second {
		t.Errorf("fn took %v, want immediate return", elapsed)
	}
}
