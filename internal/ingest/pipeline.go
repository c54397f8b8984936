// Package ingest brings an account's match history into the local store.
//
// A run partitions candidate ids against the store, fetches only the missing
// matches, classifies forfeits from their timelines, builds canonical rows and
// appends them in one transaction. Per-record failures are collected in the
// Result; integrity failures abort the run and leave the store unchanged.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/pable/go-lol-stats/internal/classifier"
	"github.com/pable/go-lol-stats/internal/fetcher"
	"github.com/pable/go-lol-stats/internal/model"
)

// Result reports one ingestion run.
type Result struct {
	Account    string
	Candidates int
	Present    int
	Fetched    int
	NewGames   int
	NewPlayers int
	Remakes    int
	// Failed maps every id that could not be ingested to its cause.
	Failed map[string]error
	// Snapshot holds the previously stored rows for the candidates plus the new rows.
	Snapshot model.Snapshot
}

// Succeeded is the number of candidates now present in the store.
func (r *Result) Succeeded() int {
	return r.Present + r.NewGames + r.Remakes
}

// FailedIDs returns the failed ids sorted.
func (r *Result) FailedIDs() []string {
	ids := make([]string, 0, len(r.Failed))
	for id := range r.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Pipeline runs ingestion against one store and provider.
type Pipeline struct {
	store   Store
	fetcher *fetcher.Fetcher
	out     io.Writer

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewPipeline wires a store and a fetcher. Progress lines go to out (nil discards).
func NewPipeline(store Store, f *fetcher.Fetcher, out io.Writer) *Pipeline {
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{store: store, fetcher: f, out: out, locks: make(map[string]*sync.Mutex)}
}

func (p *Pipeline) lock(account string) func() {
	p.mu.Lock()
	l, ok := p.locks[account]
	if !ok {
		l = &sync.Mutex{}
		p.locks[account] = l
	}
	p.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// Run ingests candidates for account. Runs for the same account are serialized.
func (p *Pipeline) Run(ctx context.Context, account string, candidates []string) (*Result, error) {
	defer p.lock(account)()

	part, err := Dedup(ctx, p.store, candidates)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Account:    account,
		Candidates: len(part.Present) + len(part.Missing),
		Present:    len(part.Present),
		Failed:     make(map[string]error),
		Snapshot:   model.Snapshot{Games: part.Games, Players: part.Players},
	}
	fmt.Fprintf(p.out, "%d candidates: %d stored, %d to fetch\n", res.Candidates, res.Present, len(part.Missing))
	if len(part.Missing) == 0 {
		return res, nil
	}

	matches := p.fetcher.Matches(ctx, part.Missing)
	for id, err := range matches.Failed {
		res.Failed[id] = err
	}
	res.Fetched = len(matches.Items)

	// Winners for every non-remake; their timelines are needed for forfeit classification.
	winners := make(map[string]model.Side)
	var live []string
	for _, id := range part.Missing {
		m, ok := matches.Items[id]
		if !ok || model.IsRemake(m.Info.DurationSeconds()) {
			continue
		}
		w, err := WinningSide(m)
		var lookup *model.LookupError
		switch {
		case errors.As(err, &lookup):
			return nil, fmt.Errorf("match %s: %w", id, err)
		case err != nil:
			res.Failed[id] = err
			continue
		}
		winners[id] = w
		live = append(live, id)
	}

	timelines := p.fetcher.Timelines(ctx, live)
	for id, err := range timelines.Failed {
		res.Failed[id] = err
		delete(winners, id)
	}
	forfeits, classifyFailed := classifier.ClassifyAll(timelines.Items, winners)
	for id, err := range classifyFailed {
		res.Failed[id] = err
	}

	var ready []string
	for _, id := range part.Missing {
		if _, ok := matches.Items[id]; ok && res.Failed[id] == nil {
			ready = append(ready, id)
		}
	}
	built, err := Build(ready, matches.Items, forfeits)
	if err != nil {
		return nil, err
	}
	for id, err := range built.Failed {
		res.Failed[id] = err
	}

	if err := p.store.AppendBatch(ctx, built.Batch); err != nil {
		return nil, fmt.Errorf("append batch: %w", err)
	}
	res.NewGames = len(built.Games)
	res.NewPlayers = len(built.Players)
	res.Remakes = len(built.Remakes)
	res.Snapshot.Games = append(res.Snapshot.Games, built.Games...)
	res.Snapshot.Players = append(res.Snapshot.Players, built.Players...)

	fmt.Fprintf(p.out, "stored %d games (%d player rows), %d remakes, %d failed\n",
		res.NewGames, res.NewPlayers, res.Remakes, len(res.Failed))
	return res, nil
}
