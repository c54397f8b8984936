package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pable/go-lol-stats/internal/cache"
	"github.com/pable/go-lol-stats/internal/champions"
	"github.com/pable/go-lol-stats/internal/fetcher"
	"github.com/pable/go-lol-stats/internal/ingest"
	"github.com/pable/go-lol-stats/internal/model"
	"github.com/pable/go-lol-stats/internal/riot"
	"github.com/pable/go-lol-stats/internal/storage"
)

// openDB opens the store at --db, creating its directory when needed.
func openDB() (*storage.DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

func loadChampions() (*champions.Table, error) {
	if cfg.Champions != "" {
		return champions.LoadFile(cfg.Champions)
	}
	return champions.Default()
}

// newProvider builds the Riot client, wrapped in a Redis cache when one is
// configured. An unreachable Redis only disables caching.
func newProvider(ctx context.Context) (riot.Provider, func(), error) {
	key, err := cfg.APIKeyOrErr()
	if err != nil {
		return nil, nil, err
	}
	client := riot.NewClient(key, cfg.Region)
	if !cfg.RedisEnabled() {
		return client, func() {}, nil
	}
	rc, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		cWarn.Fprintf(os.Stderr, "[warn] redis unavailable, continuing without cache: %v\n", err)
		return client, func() {}, nil
	}
	cp := riot.NewCachedProvider(client, rc)
	cp.Warn = os.Stderr
	return cp, func() { rc.Close() }, nil
}

func isRiotID(s string) bool { return strings.Contains(s, "#") }

// runIngest lists the account's candidates and ingests the missing ones.
func runIngest(ctx context.Context, db *storage.DB, p riot.Provider, puuid string, filter model.QueueFilter, maxPages int) (*ingest.Result, error) {
	opts := ingest.DefaultListOptions()
	opts.MaxPages = maxPages
	fmt.Fprintf(os.Stdout, "Listing matches for %s ...\n", puuid)
	candidates, err := ingest.ListCandidates(ctx, p, puuid, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	f := fetcher.New(p, fetcher.WithProgress(os.Stderr))
	return ingest.NewPipeline(db, f, os.Stdout).Run(ctx, puuid, candidates)
}
