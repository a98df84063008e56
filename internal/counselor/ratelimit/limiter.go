package ratelimit

import (
	"context"
	"sync"
	"time"

	logx "github.com/pathfinder-core/server/pkg/logger"
)

const window = 60 * time.Second

// Limiter bounds outbound model calls to a fixed number per rolling
// 60-second window. Calls are never rejected, only delayed until the oldest
// recorded call falls out of the window. A single Limiter is shared
// process-wide across sessions, so all access is synchronized.
type Limiter struct {
	mu    sync.Mutex
	limit int
	calls []time.Time

	// overridable in tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func New(requestsPerMinute int) *Limiter {
	return &Limiter{
		limit: requestsPerMinute,
		now:   time.Now,
		sleep: sleepCtx,
	}
}

// Wait blocks until a call is permitted, then records it. It returns early
// with the context's error if the context is canceled while waiting.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.limit <= 0 {
		return nil
	}

	for {
		l.mu.Lock()
		now := l.now()
		l.prune(now)
		if len(l.calls) < l.limit {
			l.calls = append(l.calls, now)
			l.mu.Unlock()
			return nil
		}
		wait := window - now.Sub(l.calls[0])
		l.mu.Unlock()

		if wait <= 0 {
			continue
		}
		logx.Debug().Dur("wait", wait).Msg("rate limit reached, delaying model call")
		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// prune drops call records older than the window. Caller holds the lock.
func (l *Limiter) prune(now time.Time) {
	cut := 0
	for cut < len(l.calls) && now.Sub(l.calls[cut]) >= window {
		cut++
	}
	if cut > 0 {
		l.calls = l.calls[cut:]
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
