package riot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pable/go-lol-stats/internal/cache"
	"github.com/pable/go-lol-stats/internal/model"
)

// AccountTTL bounds how long a Riot ID to PUUID resolution is trusted; players can rename.
const AccountTTL = 24 * time.Hour

// CachedProvider serves finished matches and timelines from a cache before
// asking the wrapped provider. Matchlists are never cached.
// Cache failures are reported to Warn and otherwise ignored.
type CachedProvider struct {
	next  Provider
	cache cache.Cache
	Warn  io.Writer
}

// NewCachedProvider decorates next with c.
func NewCachedProvider(next Provider, c cache.Cache) *CachedProvider {
	return &CachedProvider{next: next, cache: c, Warn: io.Discard}
}

func (p *CachedProvider) warn(op, key string, err error) {
	if errors.Is(err, cache.ErrMiss) {
		return
	}
	fmt.Fprintf(p.Warn, "[warn] cache %s %s: %v\n", op, key, err)
}

// ResolveAccount implements Provider.
func (p *CachedProvider) ResolveAccount(ctx context.Context, riotID string) (string, error) {
	key := "account:" + riotID
	var puuid string
	err := cache.GetJSON(ctx, p.cache, key, &puuid)
	if err == nil && puuid != "" {
		return puuid, nil
	}
	p.warn("get", key, err)

	puuid, err = p.next.ResolveAccount(ctx, riotID)
	if err != nil {
		return "", err
	}
	if err := cache.SetJSON(ctx, p.cache, key, puuid, AccountTTL); err != nil {
		p.warn("set", key, err)
	}
	return puuid, nil
}

// ListMatches implements Provider.
func (p *CachedProvider) ListMatches(ctx context.Context, puuid string, queue model.Queue, page int) ([]string, error) {
	return p.next.ListMatches(ctx, puuid, queue, page)
}

// FetchMatch implements Provider.
func (p *CachedProvider) FetchMatch(ctx context.Context, matchID string) (*Match, error) {
	key := "match:" + matchID
	var m Match
	err := cache.GetJSON(ctx, p.cache, key, &m)
	if err == nil {
		return &m, nil
	}
	p.warn("get", key, err)

	fetched, err := p.next.FetchMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, p.cache, key, fetched, 0); err != nil {
		p.warn("set", key, err)
	}
	return fetched, nil
}

// FetchTimeline implements Provider.
func (p *CachedProvider) FetchTimeline(ctx context.Context, matchID string) (*Timeline, error) {
	key := "timeline:" + matchID
	var tl Timeline
	err := cache.GetJSON(ctx, p.cache, key, &tl)
	if err == nil {
		return &tl, nil
	}
	p.warn("get", key, err)

	fetched, err := p.next.FetchTimeline(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, p.cache, key, fetched, 0); err != nil {
		p.warn("set", key, err)
	}
	return fetched, nil
}
