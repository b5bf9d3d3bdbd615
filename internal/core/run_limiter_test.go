package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunLimiter_AcquireRelease(t *testing.T) {
	l := NewRunLimiter(2, time.Second)
	ctx := context.Background()

	if s := l.Status(); s.Active != 0 || s.Available != 2 || s.MaxConcurrent != 2 {
		t.Fatalf("initial status = %+v", s)
	}

	for i := 0; i < 2; i++ {
		if err := l.Acquire(ctx); err != nil {
			t.Fatalf("Acquire %d: %v", i, err)
		}
	}
	if s := l.Status(); s.Active != 2 || s.Available != 0 {
		t.Errorf("full status = %+v", s)
	}
	if l.TryAcquire() {
		t.Error("TryAcquire should fail when full")
	}

	l.Release()
	l.Release()
	if s := l.Status(); s.Active != 0 || s.Available != 2 {
		t.Errorf("drained status = %+v", s)
	}
}

func TestRunLimiter_Timeout(t *testing.T) {
	l := NewRunLimiter(1, 20*time.Millisecond)
	if !l.TryAcquire() {
		t.Fatal("TryAcquire should succeed on an idle limiter")
	}
	defer l.Release()

	err := l.Acquire(context.Background())
	if !errors.Is(err, ErrTooManyRuns) {
		t.Errorf("Acquire = %v, want ErrTooManyRuns", err)
	}
}

func TestRunLimiter_ContextCancelled(t *testing.T) {
	l := NewRunLimiter(1, time.Minute)
	l.TryAcquire()
	defer l.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire = %v, want context.Canceled", err)
	}
}

func TestRunLimiter_Defaults(t *testing.T) {
	l := NewRunLimiter(0, 0)
	if got := l.Status().MaxConcurrent; got != DefaultMaxConcurrentRuns {
		t.Errorf("MaxConcurrent = %d, want %d", got, DefaultMaxConcurrentRuns)
	}
}

func TestRunLimiter_WaitForDrain(t *testing.T) {
	l := NewRunLimiter(2, time.Second)
	if err := l.WaitForDrain(context.Background()); err != nil {
		t.Fatalf("idle drain: %v", err)
	}

	l.TryAcquire()
	go func() {
		time.Sleep(30 * time.Millisecond)
		l.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := l.WaitForDrain(ctx); err != nil {
		t.Errorf("WaitForDrain: %v", err)
	}

	l.TryAcquire()
	defer l.Release()
	short, cancel2 := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel2()
	if err := l.WaitForDrain(short); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("WaitForDrain = %v, want deadline exceeded", err)
	}
}
