package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

func TestDoRetriesTransientFailure(t *testing.T) {
	exec := NewExecutor(Policy{
		MaxAttempts:    3,
		InitialBackoff: 1 * time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		BackoffFactor:  2,
		BreakerEnabled: false,
	})

	attempts := 0
	errTransient := errors.New("429 too many requests")
	err := exec.Do(context.Background(), "chat", func(err error) Verdict {
		return Verdict{Retryable: errors.Is(err, errTransient), RecordFailure: true}
	}, func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errTransient
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestDoStopsOnTerminalFailure(t *testing.T) {
	exec := NewExecutor(Policy{
		MaxAttempts:    3,
		InitialBackoff: 1 * time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		BackoffFactor:  2,
		BreakerEnabled: false,
	})

	attempts := 0
	errTerminal := errors.New("400 bad request")
	err := exec.Do(context.Background(), "chat", func(error) Verdict {
		return Verdict{Retryable: false, RecordFailure: false}
	}, func(context.Context) error {
		attempts++
		return errTerminal
	})
	if !errors.Is(err, errTerminal) {
		t.Fatalf("expected terminal error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestDoOpensBreakerAfterFailures(t *testing.T) {
	exec := NewExecutor(Policy{
		MaxAttempts:         1,
		InitialBackoff:      1 * time.Millisecond,
		MaxBackoff:          1 * time.Millisecond,
		BackoffFactor:       2,
		BreakerEnabled:      true,
		BreakerMinRequests:  2,
		BreakerFailureRatio: 0.5,
		BreakerOpenFor:      50 * time.Millisecond,
		BreakerProbeCalls:   1,
	})

	errUpstream := errors.New("503 service unavailable")
	classify := func(error) Verdict {
		return Verdict{Retryable: false, RecordFailure: true}
	}

	for i := 0; i < 2; i++ {
		err := exec.Do(context.Background(), "search", classify, func(context.Context) error {
			return errUpstream
		})
		if !errors.Is(err, errUpstream) {
			t.Fatalf("expected upstream error on iteration %d, got %v", i, err)
		}
	}

	err := exec.Do(context.Background(), "search", classify, func(context.Context) error {
		t.Fatalf("open breaker must not run the operation")
		return nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open state error, got %v", err)
	}
	if !IsCircuitOpen(err) {
		t.Fatalf("IsCircuitOpen must recognize open-state errors")
	}
}

func TestDoHonorsAttemptTimeout(t *testing.T) {
	exec := NewExecutor(Policy{
		AttemptTimeout: 5 * time.Millisecond,
		MaxAttempts:    1,
		InitialBackoff: 1 * time.Millisecond,
		MaxBackoff:     1 * time.Millisecond,
		BackoffFactor:  2,
		BreakerEnabled: false,
	})

	err := exec.Do(context.Background(), "chat", nil, func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
			return nil
		}
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestDoCanceledContextStopsRetrying(t *testing.T) {
	exec := NewExecutor(Policy{
		MaxAttempts:    5,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     50 * time.Millisecond,
		BackoffFactor:  2,
		BreakerEnabled: false,
	})

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	errTransient := errors.New("transient")
	err := exec.Do(ctx, "chat", func(error) Verdict {
		return Verdict{Retryable: true, RecordFailure: true}
	}, func(context.Context) error {
		attempts++
		cancel()
		return errTransient
	})
	if !errors.Is(err, errTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("cancellation during backoff must stop retries, got %d attempts", attempts)
	}
}
