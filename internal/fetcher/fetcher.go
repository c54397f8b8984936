// Package fetcher downloads match and timeline payloads for a set of ids.
//
// Every id is fetched under the retry policy; ids that still fail are collected
// in Batch.Failed rather than aborting the batch. A pacing delay follows every id.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pable/go-lol-stats/internal/retry"
	"github.com/pable/go-lol-stats/internal/riot"
)

// DefaultPacing is the pause after each id.
const DefaultPacing = 1500 * time.Millisecond

// Batch is the outcome of fetching a set of ids: whatever succeeded plus the
// cause of every failure. Items and Failed never share a key.
type Batch[T any] struct {
	Items  map[string]T
	Failed map[string]error
}

func newBatch[T any]() *Batch[T] {
	return &Batch[T]{Items: make(map[string]T), Failed: make(map[string]error)}
}

// Fetcher pulls payloads from a riot.Provider.
type Fetcher struct {
	provider riot.Provider
	policy   retry.Policy
	pacing   time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
	out      io.Writer
}

// Option customises a Fetcher.
type Option func(*Fetcher)

// WithPolicy sets the per-id retry policy.
func WithPolicy(p retry.Policy) Option { return func(f *Fetcher) { f.policy = p } }

// WithPacing sets the delay after each id.
func WithPacing(d time.Duration) Option { return func(f *Fetcher) { f.pacing = d } }

// WithSleep replaces the sleep used for pacing and retry cooldowns.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(f *Fetcher) { f.sleep = sleep }
}

// WithProgress writes one line per failed id to w.
func WithProgress(w io.Writer) Option { return func(f *Fetcher) { f.out = w } }

// New returns a Fetcher with a three-attempt, 1.5s-cooldown policy and 1.5s pacing.
func New(p riot.Provider, opts ...Option) *Fetcher {
	f := &Fetcher{
		provider: p,
		policy:   retry.Default(),
		pacing:   DefaultPacing,
		sleep:    retry.Sleep,
		out:      io.Discard,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.policy.Sleep == nil {
		f.policy.Sleep = f.sleep
	}
	return f
}

// Matches fetches match detail payloads for ids.
func (f *Fetcher) Matches(ctx context.Context, ids []string) *Batch[*riot.Match] {
	return fetchAll(ctx, f, "match", ids, f.provider.FetchMatch)
}

// Timelines fetches timeline payloads for ids.
func (f *Fetcher) Timelines(ctx context.Context, ids []string) *Batch[*riot.Timeline] {
	return fetchAll(ctx, f, "timeline", ids, f.provider.FetchTimeline)
}

func fetchAll[T any](ctx context.Context, f *Fetcher, kind string, ids []string, fetch func(context.Context, string) (T, error)) *Batch[T] {
	b := newBatch[T]()
	for i, id := range ids {
		if _, seen := b.Items[id]; seen {
			continue
		}
		if err := ctx.Err(); err != nil {
			for _, rest := range ids[i:] {
				if _, ok := b.Items[rest]; !ok {
					b.Failed[rest] = err
				}
			}
			break
		}

		v, err := retry.Value(ctx, f.policy, func(ctx context.Context) (T, error) {
			return fetch(ctx, id)
		})
		if err != nil {
			b.Failed[id] = err
			fmt.Fprintf(f.out, "[skip] %s %s: %v\n", kind, id, err)
		} else {
			delete(b.Failed, id)
			b.Items[id] = v
		}
		_ = f.sleep(ctx, f.pacing)
	}
	return b
}
