package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-lol-stats/internal/model"
	"github.com/pable/go-lol-stats/internal/riot"
	"github.com/pable/go-lol-stats/internal/testutil"
)

// build runs Build over ms, requesting each match under its own id.
func build(forfeits map[string]bool, ms ...*riot.Match) (*Built, error) {
	ids := make([]string, 0, len(ms))
	byID := make(map[string]*riot.Match, len(ms))
	for _, m := range ms {
		ids = append(ids, m.Metadata.MatchID)
		byID[m.Metadata.MatchID] = m
	}
	return Build(ids, byID, forfeits)
}

func TestWinningSide(t *testing.T) {
	m := testutil.Match("NA1_1", 420, 1800, true, testutil.DefaultChampions)
	side, err := WinningSide(m)
	require.NoError(t, err)
	assert.Equal(t, model.SideBlue, side)

	m = testutil.Match("NA1_2", 420, 1800, false, testutil.DefaultChampions)
	side, err = WinningSide(m)
	require.NoError(t, err)
	assert.Equal(t, model.SideRed, side)

	m.Info.Teams[0].TeamID = 300
	_, err = WinningSide(m)
	var lookup *model.LookupError
	assert.True(t, errors.As(err, &lookup))

	m.Info.Teams = nil
	_, err = WinningSide(m)
	var mde *model.MissingDataError
	assert.True(t, errors.As(err, &mde))
}

func TestBuildGameAndPlayers(t *testing.T) {
	m := testutil.Match("NA1_1", 420, 1805, false, testutil.DefaultChampions)
	built, err := build(map[string]bool{"NA1_1": true}, m)
	require.NoError(t, err)
	require.Len(t, built.Games, 1)
	require.Len(t, built.Players, 10)
	assert.Empty(t, built.Remakes)
	assert.Empty(t, built.Failed)

	g := built.Games[0]
	assert.Equal(t, model.Game{ID: "NA1_1", Queue: 420, Duration: 1805, Winner: model.SideRed, Forfeit: true, Creation: 1_700_000_000_000}, g)

	winners := 0
	for i, p := range built.Players {
		assert.Equal(t, i >= 5, p.Win, "slot %d", i)
		assert.Equal(t, testutil.DefaultChampions[i], p.ChampionID)
		if p.Win {
			winners++
		}
	}
	assert.Equal(t, 5, winners)
}

func TestBuildRoutesRemakes(t *testing.T) {
	remake := testutil.Match("NA1_R", 420, 250, true, testutil.DefaultChampions)
	game := testutil.Match("NA1_G", 400, 1500, true, testutil.DefaultChampions)

	built, err := build(map[string]bool{"NA1_G": false}, remake, game)
	require.NoError(t, err)
	require.Len(t, built.Remakes, 1)
	assert.Equal(t, model.Remake{ID: "NA1_R", Queue: 420, Duration: 250, Creation: 1_700_000_000_000}, built.Remakes[0])
	require.Len(t, built.Games, 1)
	assert.Equal(t, "NA1_G", built.Games[0].ID)
	for _, p := range built.Players {
		assert.NotEqual(t, "NA1_R", p.GameID, "remake must not produce player rows")
	}
}

func TestBuildLegacyMillisecondDuration(t *testing.T) {
	m := testutil.Match("NA1_OLD", 420, 0, true, testutil.DefaultChampions)
	m.Info.GameDuration = 1_750_000
	m.Info.GameEndTimestamp = 0
	built, err := build(map[string]bool{"NA1_OLD": false}, m)
	require.NoError(t, err)
	require.Len(t, built.Games, 1)
	assert.Equal(t, 1750, built.Games[0].Duration)
}

func TestBuildIsolatesMissingData(t *testing.T) {
	short := testutil.Match("NA1_9P", 420, 1800, true, testutil.DefaultChampions)
	short.Info.Participants = short.Info.Participants[:9]
	noFlag := testutil.Match("NA1_NF", 420, 1800, true, testutil.DefaultChampions)
	ok := testutil.Match("NA1_OK", 420, 1800, true, testutil.DefaultChampions)

	built, err := build(map[string]bool{"NA1_9P": false, "NA1_OK": false}, short, noFlag, ok)
	require.NoError(t, err)
	assert.Len(t, built.Games, 1)
	assert.Len(t, built.Failed, 2)
	var mde *model.MissingDataError
	assert.True(t, errors.As(built.Failed["NA1_NF"], &mde))
	assert.Equal(t, "forfeit flag", mde.Field)
}

func TestBuildAbortsOnUnknownSide(t *testing.T) {
	m := testutil.Match("NA1_1", 420, 1800, true, testutil.DefaultChampions)
	m.Info.Participants[3].TeamID = 300
	_, err := build(map[string]bool{"NA1_1": false}, m)
	var lookup *model.LookupError
	assert.True(t, errors.As(err, &lookup))
}

func TestBuildEmpty(t *testing.T) {
	built, err := Build(nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, built.Empty())
}

func TestBuildKeysFailuresByRequestedID(t *testing.T) {
	a := testutil.Match("NA1_A", 420, 1800, true, testutil.DefaultChampions)
	b := testutil.Match("NA1_B", 420, 1800, true, testutil.DefaultChampions)
	a.Info.Participants = a.Info.Participants[:9]
	b.Info.Participants = b.Info.Participants[:9]
	a.Metadata.MatchID = ""
	b.Metadata.MatchID = ""
	swapped := testutil.Match("NA1_OTHER", 420, 1800, true, testutil.DefaultChampions)
	blank := testutil.Match("NA1_BLANK", 420, 1800, false, testutil.DefaultChampions)
	blank.Metadata.MatchID = ""

	ids := []string{"NA1_A", "NA1_B", "NA1_C", "NA1_BLANK", "NA1_MISSING"}
	matches := map[string]*riot.Match{"NA1_A": a, "NA1_B": b, "NA1_C": swapped, "NA1_BLANK": blank}
	built, err := Build(ids, matches, map[string]bool{"NA1_A": false, "NA1_B": false, "NA1_C": false, "NA1_BLANK": true})
	require.NoError(t, err)

	require.Len(t, built.Games, 1)
	assert.Equal(t, "NA1_BLANK", built.Games[0].ID)
	for _, p := range built.Players {
		assert.Equal(t, "NA1_BLANK", p.GameID)
	}
	require.Len(t, built.Failed, 4)
	for _, id := range []string{"NA1_A", "NA1_B", "NA1_C", "NA1_MISSING"} {
		var mde *model.MissingDataError
		require.True(t, errors.As(built.Failed[id], &mde), id)
		assert.Equal(t, id, mde.GameID)
	}
}
