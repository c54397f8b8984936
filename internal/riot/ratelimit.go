package riot

import (
	"context"
	"sync"
	"time"
)

// Window is one rate limit constraint: at most Limit requests per Period.
type Window struct {
	Limit  int
	Period time.Duration
}

// DevKeyWindows are the development key limits (20/s, 100/2min) with headroom.
func DevKeyWindows() []Window {
	return []Window{
		{Limit: 15, Period: time.Second},
		{Limit: 90, Period: 2 * time.Minute},
	}
}

type slidingWindow struct {
	Window
	hits []time.Time
}

// RateLimiter blocks callers until every window has room for one more request.
type RateLimiter struct {
	mu          sync.Mutex
	windows     []*slidingWindow
	pausedUntil time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRateLimiter creates a limiter enforcing all the given windows.
func NewRateLimiter(windows ...Window) *RateLimiter {
	r := &RateLimiter{
		now:   time.Now,
		sleep: sleepCtx,
	}
	for _, w := range windows {
		r.windows = append(r.windows, &slidingWindow{Window: w})
	}
	return r
}

// Wait blocks until a request may be sent, then records it.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		wait := r.reserve()
		if wait <= 0 {
			return nil
		}
		if err := r.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// PauseFor blocks all callers for d, e.g. after a 429 with Retry-After.
func (r *RateLimiter) PauseFor(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until := r.now().Add(d)
	if until.After(r.pausedUntil) {
		r.pausedUntil = until
	}
}

// reserve records a request and returns 0, or returns how long to wait before trying again.
func (r *RateLimiter) reserve() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var wait time.Duration
	if r.pausedUntil.After(now) {
		wait = r.pausedUntil.Sub(now)
	}

	for _, w := range r.windows {
		cutoff := now.Add(-w.Period)
		kept := w.hits[:0]
		for _, t := range w.hits {
			if t.After(cutoff) {
				kept = append(kept, t)
			}
		}
		w.hits = kept

		if len(w.hits) >= w.Limit {
			if d := w.hits[0].Add(w.Period).Sub(now); d > wait {
				wait = d
			}
		}
	}
	if wait > 0 {
		return wait
	}

	for _, w := range r.windows {
		w.hits = append(w.hits, now)
	}
	return 0
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
