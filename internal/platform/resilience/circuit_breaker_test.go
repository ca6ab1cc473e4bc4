package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold int, openTimeout time.Duration, halfOpen int) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpen,
	})
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b, now := newTestBreaker(2, 5*time.Second, 1)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second half-open probe to be rejected, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, now := newTestBreaker(1, time.Second, 1)

	b.RecordFailure()
	*now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	b.RecordFailure()

	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after failed probe, got %s", state)
	}
}

func TestCircuitBreaker_ExecuteIgnoresNonFailures(t *testing.T) {
	b, _ := newTestBreaker(1, time.Minute, 1)
	rejected := errors.New("token rejected")

	err := b.Execute(func() error { return rejected }, func(err error) bool { return !errors.Is(err, rejected) })
	if !errors.Is(err, rejected) {
		t.Fatalf("expected fn error to pass through, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed breaker, got %s", state)
	}

	if err := b.Execute(func() error { return errors.New("dial tcp: refused") }, nil); err == nil {
		t.Fatalf("expected transport error")
	}
	if err := b.Execute(func() error { return nil }, nil); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open breaker to short-circuit, got %v", err)
	}
}

func TestCircuitBreaker_NilAllowsEverything(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false})
	if b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	called := false
	if err := b.Execute(func() error { called = true; return nil }, nil); err != nil || !called {
		t.Fatalf("expected nil breaker to run fn, called=%t err=%v", called, err)
	}
	if b.State() != CircuitStateClosed {
		t.Fatalf("expected nil breaker to report closed")
	}
}
