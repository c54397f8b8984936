package aggregator

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-lol-stats/internal/model"
)

const subject = "me"

// fakeChampions is a tiny id -> name table.
type fakeChampions map[int]string

func (f fakeChampions) Name(id int) (string, error) {
	n, ok := f[id]
	if !ok {
		return "", &model.LookupError{Kind: "champion", Key: fmt.Sprint(id)}
	}
	return n, nil
}

func (f fakeChampions) Names() []string {
	var out []string
	for _, n := range f {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

var champs = fakeChampions{
	1: "Annie", 2: "Olaf", 3: "Galio", 4: "Twisted Fate", 5: "Xin Zhao",
	6: "Urgot", 7: "LeBlanc", 8: "Vladimir", 9: "Fiddlesticks", 10: "Kayle",
	11: "Master Yi", 12: "Alistar",
}

// addGame appends one game to snap. The subject sits in slot 0 (blue) when
// blue is true, otherwise slot 5 (red). champs[i] is the champion in slot i.
func addGame(snap *model.Snapshot, id string, creation int64, duration int, winner model.Side, forfeit, blue bool, c [10]int) {
	snap.Games = append(snap.Games, model.Game{
		ID: id, Queue: 420, Duration: duration, Winner: winner, Forfeit: forfeit, Creation: creation,
	})
	for i := 0; i < 10; i++ {
		side := model.SideBlue
		if i >= 5 {
			side = model.SideRed
		}
		pid := fmt.Sprintf("%s-p%d", id, i)
		if (blue && i == 0) || (!blue && i == 5) {
			pid = subject
		}
		snap.Players = append(snap.Players, model.PlayerGame{
			GameID: id, PlayerID: pid, ChampionID: c[i], Win: side == winner,
		})
	}
}

// scenario: two wins on Annie, one loss on Olaf.
func scenario() *model.Snapshot {
	snap := &model.Snapshot{}
	addGame(snap, "G1", 1_000, 1500, model.SideBlue, false, true, [10]int{1, 3, 4, 5, 6, 7, 8, 9, 10, 11})
	addGame(snap, "G2", 2_000, 1900, model.SideRed, true, false, [10]int{3, 4, 5, 6, 7, 1, 8, 9, 10, 11})
	addGame(snap, "G3", 3_000, 2100, model.SideRed, false, true, [10]int{2, 3, 4, 5, 6, 7, 8, 9, 10, 12})
	return snap
}

func TestWinrateByChampionScenario(t *testing.T) {
	games, err := SubjectGames(scenario(), subject)
	require.NoError(t, err)
	require.Len(t, games, 3)

	rows, err := WinrateByChampion(PlayerRows(games), champs)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Annie", rows[0].Key)
	assert.Equal(t, 2, rows[0].Games)
	assert.Equal(t, 2, rows[0].Wins)
	assert.Equal(t, 1.0, rows[0].Winrate)

	assert.Equal(t, "Olaf", rows[1].Key)
	assert.Equal(t, 1, rows[1].Games)
	assert.Equal(t, 0, rows[1].Wins)
	assert.Equal(t, 0.0, rows[1].Winrate)

	for _, r := range rows {
		assert.Equal(t, r.Games, r.Wins+r.Losses)
	}
}

func TestSubjectSide(t *testing.T) {
	games, err := SubjectGames(scenario(), subject)
	require.NoError(t, err)
	assert.Equal(t, model.SideBlue, games[0].Side) // blue win
	assert.Equal(t, model.SideRed, games[1].Side)  // red win
	assert.Equal(t, model.SideBlue, games[2].Side) // blue loss

	sides := SideWinrates(games)
	require.Len(t, sides, 2)
	assert.Equal(t, "blue", sides[0].Key)
	assert.Equal(t, 2, sides[0].Games)
	assert.Equal(t, 1, sides[0].Wins)
	assert.Equal(t, "red", sides[1].Key)
	assert.Equal(t, 1, sides[1].Games)
}

func TestSideWinratesNoData(t *testing.T) {
	sides := SideWinrates(nil)
	for _, s := range sides {
		assert.False(t, s.HasData())
		assert.Equal(t, model.NoData, s.WinratePct())
		assert.False(t, math.IsNaN(s.Winrate) || math.IsNaN(s.PValue))
	}
}

func TestSplitTeams(t *testing.T) {
	snap := scenario()
	games, err := SubjectGames(snap, subject)
	require.NoError(t, err)

	allies, enemies, err := SplitTeams(snap, games)
	require.NoError(t, err)
	assert.Len(t, allies, 4*len(games))
	assert.Len(t, enemies, 5*len(games))

	won := make(map[string]bool)
	for _, g := range games {
		won[g.ID] = g.Player.Win
	}
	for _, a := range allies {
		assert.Equal(t, won[a.GameID], a.Win, "ally in %s", a.GameID)
		assert.NotEqual(t, subject, a.PlayerID)
	}
	for _, e := range enemies {
		assert.NotEqual(t, won[e.GameID], e.Win, "enemy in %s", e.GameID)
	}
}

func TestSplitTeamsRejectsIncompleteGame(t *testing.T) {
	snap := scenario()
	snap.Players = snap.Players[:len(snap.Players)-1]
	games, err := SubjectGames(snap, subject)
	require.NoError(t, err)

	_, _, err = SplitTeams(snap, games)
	var ce *model.ConsistencyError
	assert.True(t, errors.As(err, &ce))
}

func TestUnknownChampionIsAnError(t *testing.T) {
	_, err := WinrateByChampion([]model.PlayerGame{{ChampionID: 999, Win: true}}, champs)
	var lookup *model.LookupError
	assert.True(t, errors.As(err, &lookup))
}

func TestBinomTest(t *testing.T) {
	tests := []struct {
		k, n int
		want float64
	}{
		{2, 2, 0.5},
		{0, 1, 1},
		{1, 2, 1},
		{5, 10, 1},
		{10, 10, 2.0 / 1024},
		{7, 10, 0.34375},
		{3, 10, 0.34375},
		{0, 0, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, BinomTest(tt.k, tt.n), 1e-9, "BinomTest(%d, %d)", tt.k, tt.n)
	}
}

func TestNewRowBounds(t *testing.T) {
	for n := 0; n <= 12; n++ {
		for k := 0; k <= n; k++ {
			r := NewRow("x", k, n)
			assert.Equal(t, n, r.Wins+r.Losses)
			assert.True(t, r.Winrate >= 0 && r.Winrate <= 1)
			assert.True(t, r.PValue > 0 && r.PValue <= 1)
			if n > 0 && 2*k == n {
				assert.Equal(t, 1.0, r.PValue)
			}
		}
	}
}

func TestEnemyRowsFromSubjectPerspective(t *testing.T) {
	snap := scenario()
	games, _ := SubjectGames(snap, subject)
	_, enemies, err := SplitTeams(snap, games)
	require.NoError(t, err)

	rows, err := WinrateByChampion(FlipWins(enemies), champs)
	require.NoError(t, err)
	byName := make(map[string]model.WinrateRow)
	for _, r := range rows {
		byName[r.Key] = r
	}
	// Vladimir (8) was on the enemy team in G1 (win) and G3 (loss).
	assert.Equal(t, 2, byName["Vladimir"].Games)
	assert.Equal(t, 1, byName["Vladimir"].Wins)
	// Galio (3) was an enemy only in G2, which the subject won.
	assert.Equal(t, 1.0, byName["Galio"].Winrate)
}

func TestDeltaWinrates(t *testing.T) {
	with := []model.WinrateRow{
		NewRow("Annie", 3, 4), // 0.75
		NewRow("Olaf", 1, 4),  // 0.25
		NewRow("Galio", 2, 2), // ally only
	}
	against := []model.WinrateRow{
		NewRow("Annie", 1, 2), // subject wins 0.5 against; Annie wins 0.5
		NewRow("Olaf", 3, 4),  // subject wins 0.75 against; Olaf wins 0.25
		NewRow("Kayle", 0, 1), // enemy only
	}
	rows := DeltaWinrates(with, against)
	require.Len(t, rows, 4)

	assert.Equal(t, "Olaf", rows[0].Champion)
	assert.InDelta(t, 0.0, rows[0].Delta, 1e-12)
	assert.Equal(t, "Annie", rows[1].Champion)
	assert.InDelta(t, 0.25, rows[1].Delta, 1e-12)

	assert.False(t, rows[2].Complete())
	assert.Equal(t, "Galio", rows[2].Champion)
	assert.Equal(t, "Kayle", rows[3].Champion)
}

func TestSignificantAndMinGames(t *testing.T) {
	rows := []model.WinrateRow{
		NewRow("A", 10, 10),
		NewRow("B", 5, 10),
		NewRow("C", 0, 8),
		NewRow("D", 0, 0),
	}
	sig := Significant(rows, DefaultAlpha)
	require.Len(t, sig, 2)
	assert.Equal(t, "A", sig[0].Key)
	assert.Equal(t, "C", sig[1].Key)

	assert.Len(t, MinGames(rows, 9), 2)
	assert.Len(t, MinGames(rows, 0), 4)
}

func TestDurations(t *testing.T) {
	games, _ := SubjectGames(scenario(), subject)
	d := Durations(games)

	assert.Equal(t, 3, d.Overall.Games)
	assert.InDelta(t, 5500.0/3, d.Overall.MeanSeconds, 1e-9)
	assert.Equal(t, "30:33", d.Overall.String())
	assert.Equal(t, "28:20", d.Wins.String())
	assert.Equal(t, "35:00", d.Losses.String())

	require.Len(t, d.Groups, 4)
	// non-forfeit win, non-forfeit loss, forfeit win, forfeit loss
	assert.Equal(t, 1500.0, d.Groups[0].MeanSeconds)
	assert.Equal(t, 2100.0, d.Groups[1].MeanSeconds)
	assert.Equal(t, 1900.0, d.Groups[2].MeanSeconds)
	assert.Equal(t, 0, d.Groups[3].Games)
	assert.Equal(t, model.NoData, d.Groups[3].String())
}

func TestDurationBuckets(t *testing.T) {
	games, _ := SubjectGames(scenario(), subject)
	b := DurationBuckets(games, 300)

	// 1500 -> 25-30, 1900 -> 30-35, 2100 -> 35-40
	require.Len(t, b, 3)
	assert.Equal(t, "25-30", b[0].Label())
	assert.Equal(t, 1, b[0].Wins)
	assert.Equal(t, 1, b[1].Wins)
	assert.Equal(t, 1, b[2].Losses)

	wide := DurationBuckets(games, 60)
	assert.Len(t, wide, 11)
	total := 0
	for _, x := range wide {
		total += x.Games()
	}
	assert.Equal(t, 3, total)

	assert.Nil(t, DurationBuckets(nil, 300))
}

func TestPlayedUnplayed(t *testing.T) {
	games, _ := SubjectGames(scenario(), subject)
	played, unplayed, err := PlayedUnplayed(PlayerRows(games), champs)
	require.NoError(t, err)
	assert.Equal(t, []string{"Annie", "Olaf"}, played)
	assert.Len(t, unplayed, len(champs)-2)
	assert.True(t, sort.StringsAreSorted(unplayed))
	assert.NotContains(t, unplayed, "Annie")
}

func TestSummarize(t *testing.T) {
	rep, err := Summarize(scenario(), subject, champs, Options{BucketWidth: 300})
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Games)
	assert.Equal(t, 2, rep.Wins)
	assert.Equal(t, "1970-01-01 00:00:01", rep.Oldest)
	assert.Equal(t, "1970-01-01 00:00:03", rep.Newest)
	assert.Len(t, rep.Champions, 2)
	assert.NotEmpty(t, rep.Allies)
	assert.NotEmpty(t, rep.Enemies)
	assert.NotEmpty(t, rep.Deltas)
	assert.Len(t, rep.Sides, 2)
	assert.Len(t, rep.Buckets, 3)

	flex, _ := model.ParseQueueFilter("flex")
	empty, err := Summarize(scenario(), subject, champs, Options{Queues: flex})
	require.NoError(t, err)
	assert.Zero(t, empty.Games)
	assert.Equal(t, model.NoData, empty.Oldest)
	assert.Empty(t, empty.Champions)
	assert.Len(t, empty.Unplayed, len(champs))
}

func TestSummarizeOnChampion(t *testing.T) {
	rep, err := Summarize(scenario(), subject, champs, Options{Champion: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Games)
	assert.Equal(t, 2, rep.Wins)
	require.Len(t, rep.Champions, 1)
	assert.Equal(t, "Annie", rep.Champions[0].Key)
	assert.Equal(t, []string{"Annie"}, rep.Played)
	for _, e := range rep.Enemies {
		assert.NotEqual(t, "Alistar", e.Key, "enemies of the Olaf game must be excluded")
	}

	none, err := Summarize(scenario(), subject, champs, Options{Champion: 12})
	require.NoError(t, err)
	assert.Zero(t, none.Games)
}
