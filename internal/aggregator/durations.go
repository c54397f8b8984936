package aggregator

import (
	"github.com/pable/go-lol-stats/internal/model"
)

// DefaultBucketWidth is the duration histogram bucket width in seconds.
const DefaultBucketWidth = 5 * 60

type meanAcc struct {
	n   int
	sum float64
}

func (m *meanAcc) add(sec int) { m.n++; m.sum += float64(sec) }

func (m meanAcc) stat() model.DurationStat {
	if m.n == 0 {
		return model.DurationStat{}
	}
	return model.DurationStat{Games: m.n, MeanSeconds: m.sum / float64(m.n)}
}

// Durations returns mean durations overall, by result, and by
// (forfeit, result). Groups are ordered non-forfeit win, non-forfeit loss,
// forfeit win, forfeit loss, and are always present.
func Durations(games []SubjectGame) model.DurationSummary {
	var all, wins, losses meanAcc
	var groups [2][2]meanAcc // [forfeit][win]
	for _, g := range games {
		all.add(g.Duration)
		if g.Player.Win {
			wins.add(g.Duration)
		} else {
			losses.add(g.Duration)
		}
		groups[b2i(g.Forfeit)][b2i(g.Player.Win)].add(g.Duration)
	}

	s := model.DurationSummary{Overall: all.stat(), Wins: wins.stat(), Losses: losses.stat()}
	for _, forfeit := range []bool{false, true} {
		for _, win := range []bool{true, false} {
			s.Groups = append(s.Groups, model.DurationGroup{
				Forfeit:      forfeit,
				Win:          win,
				DurationStat: groups[b2i(forfeit)][b2i(win)].stat(),
			})
		}
	}
	return s
}

// DurationBuckets counts wins and losses per [start, start+width) bucket,
// from the bucket holding the shortest game to the one holding the longest.
// Empty inner buckets are included. width <= 0 uses DefaultBucketWidth.
func DurationBuckets(games []SubjectGame, width int) []model.DurationBucket {
	if len(games) == 0 {
		return nil
	}
	if width <= 0 {
		width = DefaultBucketWidth
	}
	lo, hi := games[0].Duration, games[0].Duration
	for _, g := range games[1:] {
		lo = min(lo, g.Duration)
		hi = max(hi, g.Duration)
	}
	first := lo / width
	n := hi/width - first + 1

	out := make([]model.DurationBucket, n)
	for i := range out {
		start := (first + i) * width
		out[i] = model.DurationBucket{StartSec: start, EndSec: start + width}
	}
	for _, g := range games {
		b := &out[g.Duration/width-first]
		if g.Player.Win {
			b.Wins++
		} else {
			b.Losses++
		}
	}
	return out
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
