package ingest

import (
	"errors"
	"fmt"

	"github.com/pable/go-lol-stats/internal/model"
	"github.com/pable/go-lol-stats/internal/riot"
)

// PlayersPerGame is the participant count of a standard 5v5 match.
const PlayersPerGame = 10

// WinningSide reads the winner from the first listed team's outcome.
func WinningSide(m *riot.Match) (model.Side, error) {
	if len(m.Info.Teams) == 0 {
		return model.SideUnknown, &model.MissingDataError{GameID: m.Metadata.MatchID, Field: "teams"}
	}
	first := m.Info.Teams[0]
	side, err := model.SideFromCode(first.TeamID)
	if err != nil {
		return model.SideUnknown, err
	}
	if first.Win {
		return side, nil
	}
	return side.Other(), nil
}

// Built is the Record Builder output. Failed holds per-record MissingDataErrors.
type Built struct {
	model.Batch
	Failed map[string]error
}

// Build turns the fetched matches for ids, in order, and their forfeit flags
// into canonical rows. Rows are keyed by the requested id; a payload that
// names a different match is rejected. Matches at or below the remake
// threshold go to Remakes and need no flag. A record missing required data is
// reported in Failed under its requested id and skipped; an unmapped side code
// aborts with a LookupError.
func Build(ids []string, matches map[string]*riot.Match, forfeits map[string]bool) (*Built, error) {
	out := &Built{Failed: make(map[string]error)}
	for _, id := range ids {
		games, players, remake, err := buildOne(id, matches[id], forfeits)
		var mde *model.MissingDataError
		switch {
		case errors.As(err, &mde):
			out.Failed[mde.GameID] = err
			continue
		case err != nil:
			return nil, err
		}
		if remake != nil {
			out.Remakes = append(out.Remakes, *remake)
			continue
		}
		out.Games = append(out.Games, games)
		out.Players = append(out.Players, players...)
	}
	return out, nil
}

func buildOne(id string, m *riot.Match, forfeits map[string]bool) (model.Game, []model.PlayerGame, *model.Remake, error) {
	if m == nil {
		return model.Game{}, nil, nil, &model.MissingDataError{GameID: id, Field: "match payload"}
	}
	// An empty payload id is tolerated; the requested id is authoritative.
	if got := m.Metadata.MatchID; got != "" && got != id {
		return model.Game{}, nil, nil, &model.MissingDataError{GameID: id, Field: fmt.Sprintf("match id (payload is %s)", got)}
	}
	duration := m.Info.DurationSeconds()
	queue := model.Queue(m.Info.QueueID)
	if model.IsRemake(duration) {
		return model.Game{}, nil, &model.Remake{ID: id, Queue: queue, Duration: duration, Creation: m.Info.GameCreation}, nil
	}

	if len(m.Info.Participants) != PlayersPerGame {
		return model.Game{}, nil, nil, &model.MissingDataError{
			GameID: id,
			Field:  fmt.Sprintf("participants (got %d, want %d)", len(m.Info.Participants), PlayersPerGame),
		}
	}
	forfeit, ok := forfeits[id]
	if !ok {
		return model.Game{}, nil, nil, &model.MissingDataError{GameID: id, Field: "forfeit flag"}
	}
	winner, err := WinningSide(m)
	if err != nil {
		return model.Game{}, nil, nil, err
	}

	players := make([]model.PlayerGame, 0, PlayersPerGame)
	for _, p := range m.Info.Participants {
		if p.PUUID == "" {
			return model.Game{}, nil, nil, &model.MissingDataError{GameID: id, Field: "participant puuid"}
		}
		side, err := model.SideFromCode(p.TeamID)
		if err != nil {
			return model.Game{}, nil, nil, err
		}
		players = append(players, model.PlayerGame{
			GameID:     id,
			PlayerID:   p.PUUID,
			ChampionID: p.ChampionID,
			Win:        side == winner,
		})
	}
	game := model.Game{
		ID:       id,
		Queue:    queue,
		Duration: duration,
		Winner:   winner,
		Forfeit:  forfeit,
		Creation: m.Info.GameCreation,
	}
	return game, players, nil, nil
}
