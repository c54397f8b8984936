package ingest

import (
	"context"
	"fmt"

	"github.com/pable/go-lol-stats/internal/model"
)

// Store is the local game store used as the dedup source of truth.
type Store interface {
	// Partition splits ids into stored and missing, returning stored rows for the former.
	Partition(ctx context.Context, ids []string) (*model.Partition, error)
	// AppendBatch writes all rows atomically.
	AppendBatch(ctx context.Context, b model.Batch) error
}

// Unique drops duplicate and empty ids, keeping first-seen order.
func Unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Dedup partitions candidates against the store and checks the result covers
// every candidate exactly once.
func Dedup(ctx context.Context, store Store, candidates []string) (*model.Partition, error) {
	ids := Unique(candidates)
	p, err := store.Partition(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("dedup: %w", err)
	}
	if err := checkPartition(ids, p); err != nil {
		return nil, err
	}
	return p, nil
}

func checkPartition(ids []string, p *model.Partition) error {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	got := make(map[string]string, len(ids))
	for _, set := range []struct {
		name string
		ids  []string
	}{{"present", p.Present}, {"missing", p.Missing}} {
		for _, id := range set.ids {
			if _, ok := want[id]; !ok {
				return &model.ConsistencyError{Reason: fmt.Sprintf("%s id %s was not a candidate", set.name, id)}
			}
			if prev, dup := got[id]; dup {
				return &model.ConsistencyError{Reason: fmt.Sprintf("id %s is both %s and %s", id, prev, set.name)}
			}
			got[id] = set.name
		}
	}
	if len(got) != len(want) {
		return &model.ConsistencyError{Reason: fmt.Sprintf("partition covers %d of %d candidates", len(got), len(want))}
	}

	present := make(map[string]struct{}, len(p.Present))
	for _, id := range p.Present {
		present[id] = struct{}{}
	}
	for _, g := range p.Games {
		if _, ok := present[g.ID]; !ok {
			return &model.ConsistencyError{Reason: fmt.Sprintf("stored game %s not in present set", g.ID)}
		}
	}
	for _, pg := range p.Players {
		if _, ok := present[pg.GameID]; !ok {
			return &model.ConsistencyError{Reason: fmt.Sprintf("stored player row for %s not in present set", pg.GameID)}
		}
	}
	return nil
}
