// Package aggregator computes win-rate, side, and duration statistics for one
// subject player from stored game and player rows.
//
// All functions are pure: they read an already-joined model.Snapshot and never
// touch the store. Groups with no games are kept with HasData() == false rather
// than dividing by zero.
package aggregator

import (
	"fmt"
	"sort"

	"github.com/pable/go-lol-stats/internal/model"
)

// Champions maps champion ids to display names.
type Champions interface {
	Name(id int) (string, error)
	Names() []string
}

// SubjectGame is one game seen from the subject's seat.
type SubjectGame struct {
	model.Game
	Player model.PlayerGame
	Side   model.Side
}

// SubjectGames returns the subject's games in creation order.
// The subject's side is the winner when they won and the other side otherwise.
func SubjectGames(snap *model.Snapshot, subject string) ([]SubjectGame, error) {
	idx := snap.GameIndex()
	var out []SubjectGame
	for _, p := range snap.Players {
		if p.PlayerID != subject {
			continue
		}
		g, ok := idx[p.GameID]
		if !ok {
			return nil, &model.ConsistencyError{Reason: fmt.Sprintf("player row for unknown game %s", p.GameID)}
		}
		side := g.Winner
		if !p.Win {
			side = g.Winner.Other()
		}
		out = append(out, SubjectGame{Game: g, Player: p, Side: side})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Creation != out[j].Creation {
			return out[i].Creation < out[j].Creation
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// PlayerRows returns the subject's own player rows.
func PlayerRows(games []SubjectGame) []model.PlayerGame {
	out := make([]model.PlayerGame, len(games))
	for i, g := range games {
		out[i] = g.Player
	}
	return out
}

// SplitTeams partitions the other nine participants of each subject game into
// allies (same win flag as the subject) and enemies. Rows keep their own win
// flags. Every game must yield exactly four allies and five enemies.
func SplitTeams(snap *model.Snapshot, games []SubjectGame) (allies, enemies []model.PlayerGame, err error) {
	byGame := make(map[string][]model.PlayerGame, len(games))
	for _, p := range snap.Players {
		byGame[p.GameID] = append(byGame[p.GameID], p)
	}
	for _, g := range games {
		var a, e int
		for _, p := range byGame[g.ID] {
			if p.PlayerID == g.Player.PlayerID {
				continue
			}
			if p.Win == g.Player.Win {
				allies = append(allies, p)
				a++
			} else {
				enemies = append(enemies, p)
				e++
			}
		}
		if a != 4 || e != 5 {
			return nil, nil, &model.ConsistencyError{
				Reason: fmt.Sprintf("game %s splits into %d allies and %d enemies", g.ID, a, e),
			}
		}
	}
	return allies, enemies, nil
}

// FlipWins returns copies of rows with the win flag inverted, turning enemy
// rows into the subject's results against those champions.
func FlipWins(rows []model.PlayerGame) []model.PlayerGame {
	out := make([]model.PlayerGame, len(rows))
	for i, r := range rows {
		r.Win = !r.Win
		out[i] = r
	}
	return out
}
