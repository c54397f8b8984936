// Package riot talks to the Riot Games account-v1 and match-v5 APIs.
package riot

import (
	"context"

	"github.com/pable/go-lol-stats/internal/model"
)

// MatchlistPageSize is the number of ids requested per matchlist page.
const MatchlistPageSize = 100

// Provider is the game-data capability the ingestion pipeline depends on.
//
// Errors wrap *model.TransientFetchError when a retry may succeed and
// model.ErrNotFound when the resource does not exist.
type Provider interface {
	// ResolveAccount maps a "gameName#tagLine" Riot ID to a PUUID.
	ResolveAccount(ctx context.Context, riotID string) (string, error)
	// ListMatches returns one page of match ids for the account in the given queue.
	// An empty page marks the end of the history.
	ListMatches(ctx context.Context, puuid string, queue model.Queue, page int) ([]string, error)
	FetchMatch(ctx context.Context, matchID string) (*Match, error)
	FetchTimeline(ctx context.Context, matchID string) (*Timeline, error)
}
