package aggregator

import (
	"sort"

	"github.com/pable/go-lol-stats/internal/model"
)

// Options tunes Summarize.
type Options struct {
	// Queues restricts the analysed games; nil keeps all.
	Queues model.QueueFilter
	// BucketWidth is the duration histogram width in seconds.
	BucketWidth int
	// Champion keeps only games the subject played on this champion id; 0 keeps all.
	Champion int
}

// OnChampion keeps the games the subject played on champion id.
func OnChampion(games []SubjectGame, id int) []SubjectGame {
	var out []SubjectGame
	for _, g := range games {
		if g.Player.ChampionID == id {
			out = append(out, g)
		}
	}
	return out
}

// PlayedUnplayed returns the sorted names of champions the subject has played
// and of every other champion in the table.
func PlayedUnplayed(rows []model.PlayerGame, champs Champions) (played, unplayed []string, err error) {
	seen := make(map[string]struct{})
	for _, r := range rows {
		name, err := champs.Name(r.ChampionID)
		if err != nil {
			return nil, nil, err
		}
		seen[name] = struct{}{}
	}
	for name := range seen {
		played = append(played, name)
	}
	sort.Strings(played)
	for _, name := range champs.Names() {
		if _, ok := seen[name]; !ok {
			unplayed = append(unplayed, name)
		}
	}
	return played, unplayed, nil
}

// FilterQueues keeps games in the filter together with their player rows.
func FilterQueues(snap *model.Snapshot, f model.QueueFilter) *model.Snapshot {
	if f == nil {
		return snap
	}
	out := &model.Snapshot{}
	keep := make(map[string]bool)
	for _, g := range snap.Games {
		if f.Contains(g.Queue) {
			out.Games = append(out.Games, g)
			keep[g.ID] = true
		}
	}
	for _, p := range snap.Players {
		if keep[p.GameID] {
			out.Players = append(out.Players, p)
		}
	}
	return out
}

// Summarize runs every aggregation for subject.
func Summarize(snap *model.Snapshot, subject string, champs Champions, opts Options) (*model.PlayerReport, error) {
	snap = FilterQueues(snap, opts.Queues)
	games, err := SubjectGames(snap, subject)
	if err != nil {
		return nil, err
	}
	if opts.Champion != 0 {
		games = OnChampion(games, opts.Champion)
	}
	rep := &model.PlayerReport{Subject: subject, Games: len(games), Oldest: model.NoData, Newest: model.NoData}
	if len(games) > 0 {
		rep.Oldest = model.FormatCreation(games[0].Creation)
		rep.Newest = model.FormatCreation(games[len(games)-1].Creation)
	}
	rep.Wins = Overall(games).Wins

	own := PlayerRows(games)
	if rep.Champions, err = WinrateByChampion(own, champs); err != nil {
		return nil, err
	}
	allies, enemies, err := SplitTeams(snap, games)
	if err != nil {
		return nil, err
	}
	if rep.Allies, err = WinrateByChampion(allies, champs); err != nil {
		return nil, err
	}
	if rep.Enemies, err = WinrateByChampion(FlipWins(enemies), champs); err != nil {
		return nil, err
	}
	rep.Deltas = DeltaWinrates(rep.Allies, rep.Enemies)
	rep.Sides = SideWinrates(games)
	rep.Durations = Durations(games)
	rep.Buckets = DurationBuckets(games, opts.BucketWidth)
	if rep.Played, rep.Unplayed, err = PlayedUnplayed(own, champs); err != nil {
		return nil, err
	}
	return rep, nil
}
