package ratelimit

import (
	"context"
	"testing"
	"time"
)

// testClock drives a Limiter deterministically: sleeps advance the fake
// clock instead of blocking.
func testClock(l *Limiter, start time.Time) (slept *[]time.Duration) {
	now := start
	durations := []time.Duration{}
	l.now = func() time.Time { return now }
	l.sleep = func(_ context.Context, d time.Duration) error {
		durations = append(durations, d)
		now = now.Add(d)
		return nil
	}
	return &durations
}

func TestWaitUnderLimitDoesNotSleep(t *testing.T) {
	l := New(3)
	slept := testClock(l, time.Unix(1000, 0))

	for i := 0; i < 3; i++ {
		if err := l.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error: %v", err)
		}
	}
	if len(*slept) != 0 {
		t.Errorf("slept %v, want no sleeps under the limit", *slept)
	}
}

func TestWaitAtLimitDelaysUntilOldestExpires(t *testing.T) {
	l := New(2)
	slept := testClock(l, time.Unix(1000, 0))

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("Wait() error: %v", err)
		}
	}
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("Wait() error: %v", err)
	}

	if len(*slept) != 1 {
		t.Fatalf("slept %v, want exactly one delay", *slept)
	}
	if (*slept)[0] != window {
		t.Errorf("slept %v, want the full window with no elapsed time", (*slept)[0])
	}
}

func TestWaitPrunesExpiredCalls(t *testing.T) {
	l := New(2)
	start := time.Unix(1000, 0)
	now := start
	l.now = func() time.Time { return now }
	l.sleep = func(_ context.Context, d time.Duration) error {
		t.Fatalf("unexpected sleep of %v", d)
		return nil
	}

	ctx := context.Background()
	_ = l.Wait(ctx)
	_ = l.Wait(ctx)

	// move past the window; the third call must go through immediately
	now = start.Add(window + time.Second)
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
}

func TestWaitCanceledContext(t *testing.T) {
	l := New(1)
	l.now = time.Now

	ctx, cancel := context.WithCancel(context.Background())
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("first Wait() error: %v", err)
	}
	cancel()

	if err := l.Wait(ctx); err == nil {
		t.Error("Wait() on canceled context returned nil, want error")
	}
}

func TestNilAndUnlimitedLimiter(t *testing.T) {
	var l *Limiter
	if err := l.Wait(context.Background()); err != nil {
		t.Errorf("nil limiter Wait() error: %v", err)
	}
	if err := New(0).Wait(context.Background()); err != nil {
		t.Errorf("unlimited limiter Wait() error: %v", err)
	}
}
