// Package retry runs provider calls under a bounded attempt budget.
package retry

import (
	"context"
	"time"

	"github.com/pable/go-lol-stats/internal/model"
)

// Policy configures Do. Attempts counts the first try.
type Policy struct {
	Attempts int
	Cooldown time.Duration
	// Sleep pauses between attempts; nil means a context-aware time.Sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Default is three attempts with a 1.5s cooldown.
func Default() Policy {
	return Policy{Attempts: 3, Cooldown: 1500 * time.Millisecond}
}

// Do calls fn until it succeeds, returns a non-retryable error, or the attempt
// budget is spent. The last error is returned.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if serr := sleep(ctx, p.Cooldown); serr != nil {
				return err
			}
		}
		if err = fn(ctx); err == nil || !model.IsRetryable(err) {
			return err
		}
	}
	return err
}

// Value is Do for functions returning a result.
func Value[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := Do(ctx, p, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// Sleep blocks for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
