// Package classifier decides from a match timeline whether a win came by forfeit.
//
// The decision is a heuristic: a win counts as structural only when both of the
// loser's nexus turrets were destroyed at some point in the game. A team that
// was one push from losing but surrendered is still classified as a forfeit.
package classifier

import (
	"errors"

	"github.com/pable/go-lol-stats/internal/model"
	"github.com/pable/go-lol-stats/internal/riot"
)

const (
	eventBuildingKill = "BUILDING_KILL"
	towerNexus        = "NEXUS_TURRET"
)

// Nexus turret x coordinates on Summoner's Rift, two per side.
var nexusTurretX = map[model.Side][2]int{
	model.SideBlue: {1748, 2177},
	model.SideRed:  {12611, 13052},
}

// NexusTurretsDestroyed reports, per side, whether both of that side's nexus
// turrets were destroyed at least once. Event order is irrelevant.
func NexusTurretsDestroyed(tl *riot.Timeline) (blue, red bool) {
	var seen [2][2]bool // [blue,red][turret]
	for _, frame := range tl.Info.Frames {
		for _, ev := range frame.Events {
			if ev.Type != eventBuildingKill || ev.TowerType != towerNexus || ev.Position == nil {
				continue
			}
			for si, side := range []model.Side{model.SideBlue, model.SideRed} {
				for ti, x := range nexusTurretX[side] {
					if ev.Position.X == x {
						seen[si][ti] = true
					}
				}
			}
		}
	}
	return seen[0][0] && seen[0][1], seen[1][0] && seen[1][1]
}

// IsForfeit classifies a finished match. It is not a forfeit only when the
// losing side's two nexus turrets were both destroyed.
func IsForfeit(tl *riot.Timeline, winner model.Side) (bool, error) {
	id := ""
	if tl != nil {
		id = tl.Metadata.MatchID
	}
	if tl == nil || len(tl.Info.Frames) == 0 {
		return false, &model.MissingDataError{GameID: id, Field: "timeline frames"}
	}
	if winner != model.SideBlue && winner != model.SideRed {
		return false, &model.MissingDataError{GameID: id, Field: "winning side"}
	}

	blue, red := NexusTurretsDestroyed(tl)
	finished := (red && winner == model.SideBlue) || (blue && winner == model.SideRed)
	return !finished, nil
}

// ClassifyAll classifies every timeline whose winner is known. Per-game
// failures are returned in failed and do not stop the rest.
func ClassifyAll(timelines map[string]*riot.Timeline, winners map[string]model.Side) (forfeits map[string]bool, failed map[string]error) {
	forfeits = make(map[string]bool, len(timelines))
	failed = make(map[string]error)
	for id, winner := range winners {
		tl, ok := timelines[id]
		if !ok {
			failed[id] = &model.MissingDataError{GameID: id, Field: "timeline"}
			continue
		}
		f, err := IsForfeit(tl, winner)
		if err != nil {
			var mde *model.MissingDataError
			if errors.As(err, &mde) && mde.GameID == "" {
				mde.GameID = id
			}
			failed[id] = err
			continue
		}
		forfeits[id] = f
	}
	return forfeits, failed
}
