package aggregator

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pable/go-lol-stats/internal/model"
)

// DefaultAlpha is the significance threshold used by Significant.
const DefaultAlpha = 0.05

// BinomTest is the two-tailed exact binomial test of k successes in n trials
// against p = 0.5: the total probability of outcomes no more likely than k.
// It returns 1 for n == 0.
func BinomTest(k, n int) float64 {
	if n <= 0 || k < 0 || k > n {
		return 1
	}
	dist := distuv.Binomial{N: float64(n), P: 0.5}
	d := dist.Prob(float64(k)) * (1 + 1e-7)
	var p float64
	for i := 0; i <= n; i++ {
		if pi := dist.Prob(float64(i)); pi <= d {
			p += pi
		}
	}
	return math.Min(1, p)
}

// NewRow builds a win-rate row. A zero-game row has Winrate 0 and PValue 1.
func NewRow(key string, wins, games int) model.WinrateRow {
	r := model.WinrateRow{Key: key, Games: games, Wins: wins, Losses: games - wins, PValue: 1}
	if games > 0 {
		r.Winrate = float64(wins) / float64(games)
		r.PValue = BinomTest(wins, games)
	}
	return r
}

type tally struct{ wins, games int }

// WinrateByChampion groups rows by champion. A champion id missing from the
// table is an error. Rows sort by win rate, then games, descending, then name.
func WinrateByChampion(rows []model.PlayerGame, champs Champions) ([]model.WinrateRow, error) {
	counts := make(map[int]*tally)
	for _, r := range rows {
		t, ok := counts[r.ChampionID]
		if !ok {
			t = &tally{}
			counts[r.ChampionID] = t
		}
		t.games++
		if r.Win {
			t.wins++
		}
	}

	out := make([]model.WinrateRow, 0, len(counts))
	for id, t := range counts {
		name, err := champs.Name(id)
		if err != nil {
			return nil, err
		}
		row := NewRow(name, t.wins, t.games)
		row.ChampionID = id
		out = append(out, row)
	}
	sortByWinrate(out)
	return out, nil
}

func sortByWinrate(rows []model.WinrateRow) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Winrate != b.Winrate {
			return a.Winrate > b.Winrate
		}
		if a.Games != b.Games {
			return a.Games > b.Games
		}
		return a.Key < b.Key
	})
}

// SideWinrates returns one row per side, blue first. Sides with no games are
// kept with HasData() == false.
func SideWinrates(games []SubjectGame) []model.WinrateRow {
	var blue, red tally
	for _, g := range games {
		t := &blue
		if g.Side == model.SideRed {
			t = &red
		}
		t.games++
		if g.Player.Win {
			t.wins++
		}
	}
	return []model.WinrateRow{
		NewRow(model.SideBlue.String(), blue.wins, blue.games),
		NewRow(model.SideRed.String(), red.wins, red.games),
	}
}

// Overall returns the subject's total record.
func Overall(games []SubjectGame) model.WinrateRow {
	wins := 0
	for _, g := range games {
		if g.Player.Win {
			wins++
		}
	}
	return NewRow("overall", wins, len(games))
}

// Significant returns rows with data whose p-value is below alpha, most
// significant first.
func Significant(rows []model.WinrateRow, alpha float64) []model.WinrateRow {
	var out []model.WinrateRow
	for _, r := range rows {
		if r.HasData() && r.PValue < alpha {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PValue < out[j].PValue })
	return out
}

// MinGames drops rows with fewer than n games.
func MinGames(rows []model.WinrateRow, n int) []model.WinrateRow {
	if n <= 1 {
		return rows
	}
	var out []model.WinrateRow
	for _, r := range rows {
		if r.Games >= n {
			out = append(out, r)
		}
	}
	return out
}

// DeltaWinrates joins ally rows (subject's results with the champion) and
// enemy rows already flipped to the subject's perspective (results against
// it). Delta = with - (1 - against). Complete rows sort ascending by delta;
// rows missing either side follow, by name.
func DeltaWinrates(with, against []model.WinrateRow) []model.DeltaRow {
	byName := make(map[string]*model.DeltaRow)
	get := func(name string) *model.DeltaRow {
		d, ok := byName[name]
		if !ok {
			d = &model.DeltaRow{Champion: name}
			byName[name] = d
		}
		return d
	}
	for _, r := range with {
		d := get(r.Key)
		d.GamesWith, d.WinrateWith = r.Games, r.Winrate
	}
	for _, r := range against {
		d := get(r.Key)
		d.GamesAgainst, d.WinrateAgainst = r.Games, r.Winrate
	}

	out := make([]model.DeltaRow, 0, len(byName))
	for _, d := range byName {
		if d.Complete() {
			d.Delta = d.WinrateWith - (1 - d.WinrateAgainst)
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Complete() != b.Complete() {
			return a.Complete()
		}
		if a.Complete() && a.Delta != b.Delta {
			return a.Delta < b.Delta
		}
		return a.Champion < b.Champion
	})
	return out
}
