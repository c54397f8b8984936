package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/pable/go-lol-stats/internal/model"
	"github.com/pable/go-lol-stats/internal/retry"
	"github.com/pable/go-lol-stats/internal/riot"
)

// ListOptions controls matchlist paging.
type ListOptions struct {
	Retry  retry.Policy
	Pacing time.Duration
	// MaxPages caps pages per queue; 0 means until an empty page.
	MaxPages int
}

// DefaultListOptions pages with the default retry policy and 1.5s pacing.
func DefaultListOptions() ListOptions {
	return ListOptions{Retry: retry.Default(), Pacing: 1500 * time.Millisecond}
}

// ListCandidates pages the account's matchlist for every queue in filter and
// returns the de-duplicated ids.
func ListCandidates(ctx context.Context, p riot.Provider, puuid string, filter model.QueueFilter, opts ListOptions) ([]string, error) {
	sleep := opts.Retry.Sleep
	if sleep == nil {
		sleep = retry.Sleep
	}

	var ids []string
	for _, q := range filter.Queues() {
		for page := 0; opts.MaxPages <= 0 || page < opts.MaxPages; page++ {
			got, err := retry.Value(ctx, opts.Retry, func(ctx context.Context) ([]string, error) {
				return p.ListMatches(ctx, puuid, q, page)
			})
			if err != nil {
				return nil, fmt.Errorf("matchlist %s queue %d page %d: %w", puuid, int(q), page, err)
			}
			if len(got) == 0 {
				break
			}
			ids = append(ids, got...)
			if err := sleep(ctx, opts.Pacing); err != nil {
				return nil, err
			}
		}
	}
	return Unique(ids), nil
}
