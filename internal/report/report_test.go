package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-lol-stats/internal/ingest"
	"github.com/pable/go-lol-stats/internal/model"
	"github.com/pable/go-lol-stats/internal/storage"
)

type champs map[int]string

func (c champs) Name(id int) (string, error) {
	if n, ok := c[id]; ok {
		return n, nil
	}
	return "", &model.LookupError{Kind: "champion", Key: "x"}
}

func (c champs) Names() []string { return nil }

func TestPrintReportEmptyGroups(t *testing.T) {
	var buf bytes.Buffer
	rep := &model.PlayerReport{
		Subject: "puuid-0",
		Oldest:  model.NoData,
		Newest:  model.NoData,
		Sides: []model.WinrateRow{
			{Key: "blue", Games: 2, Wins: 1, Losses: 1, Winrate: 0.5, PValue: 1},
			{Key: "red"},
		},
		Deltas: []model.DeltaRow{{Champion: "Annie", GamesWith: 1, WinrateWith: 1}},
		Buckets: []model.DurationBucket{
			{StartSec: 1500, EndSec: 1800, Wins: 1},
			{StartSec: 1800, EndSec: 2100},
		},
		Unplayed: []string{"Annie", "Olaf"},
	}
	PrintReport(&buf, rep, Options{})
	out := buf.String()

	assert.Contains(t, out, "puuid-0")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "25-30")
	assert.Contains(t, out, "Annie, Olaf")
	assert.Contains(t, out, model.NoData)
	assert.NotContains(t, out, "NaN")
}

func TestPrintIngestResult(t *testing.T) {
	var buf bytes.Buffer
	PrintIngestResult(&buf, &ingest.Result{
		Account:    "puuid-0",
		Candidates: 5,
		Present:    2,
		Fetched:    2,
		NewGames:   1,
		NewPlayers: 10,
		Remakes:    1,
		Failed:     map[string]error{"NA1_9": errors.New("HTTP 500")},
	})
	out := buf.String()
	assert.Contains(t, out, "[error] NA1_9: HTTP 500")
	assert.Contains(t, out, "4") // succeeded
}

func TestPrintGameUnknownChampion(t *testing.T) {
	g := &model.Game{ID: "NA1_1", Queue: 420, Duration: 1800, Winner: model.SideBlue}
	players := []model.PlayerGame{{GameID: "NA1_1", PlayerID: "p1", ChampionID: 1, Win: true}}

	var buf bytes.Buffer
	require.NoError(t, PrintGame(&buf, g, players, champs{1: "Annie"}, "p1"))
	assert.True(t, strings.Contains(buf.String(), "Annie"))

	players[0].ChampionID = 99
	var lookup *model.LookupError
	assert.ErrorAs(t, PrintGame(&buf, g, players, champs{1: "Annie"}, ""), &lookup)
}

func TestPrintOverviewEmptyStore(t *testing.T) {
	var buf bytes.Buffer
	PrintOverview(&buf, storage.Overview{}, nil, nil)
	assert.Contains(t, buf.String(), "Games: 0")
	assert.NotContains(t, buf.String(), "Range")
}

func TestPrintRaw(t *testing.T) {
	var buf bytes.Buffer
	PrintRaw(&buf, []string{"n"}, [][]string{{"1"}, {"2"}})
	assert.Contains(t, buf.String(), "(2 rows)")
}
