package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pable/go-lol-stats/internal/aggregator"
	"github.com/pable/go-lol-stats/internal/ingest"
	"github.com/pable/go-lol-stats/internal/model"
	"github.com/pable/go-lol-stats/internal/storage"
)

// PrintIngestResult prints the counts of one ingestion run and every failed id with its cause.
func PrintIngestResult(w io.Writer, res *ingest.Result) {
	title(w, "Ingest "+res.Account)
	table := newTable(w)
	table.Header("CANDIDATES", "STORED", "FETCHED", "NEW_GAMES", "NEW_PLAYERS", "REMAKES", "SUCCEEDED", "FAILED")
	table.Append(
		strconv.Itoa(res.Candidates),
		strconv.Itoa(res.Present),
		strconv.Itoa(res.Fetched),
		strconv.Itoa(res.NewGames),
		strconv.Itoa(res.NewPlayers),
		strconv.Itoa(res.Remakes),
		strconv.Itoa(res.Succeeded()),
		strconv.Itoa(len(res.Failed)),
	)
	table.Render()
	for _, id := range res.FailedIDs() {
		cError.Fprintf(w, "[error] %s: %v\n", id, res.Failed[id])
	}
}

// PrintGames prints one line per stored game.
func PrintGames(w io.Writer, games []model.Game) {
	table := newTable(w)
	table.Header("GAME", "DATE", "QUEUE", "DURATION", "WINNER", "FORFEIT")
	for _, g := range games {
		table.Append(g.ID, model.FormatCreation(g.Creation), g.Queue.String(),
			model.FormatDuration(float64(g.Duration)), g.Winner.String(), yesNo(g.Forfeit))
	}
	table.Render()
}

// PrintGame prints a game header and its player rows. highlight marks one player.
func PrintGame(w io.Writer, g *model.Game, players []model.PlayerGame, champs aggregator.Champions, highlight string) error {
	fmt.Fprintf(w, "\nGame: %s  |  Date: %s  |  Queue: %s  |  Duration: %s  |  Winner: %s  |  Forfeit: %s\n\n",
		g.ID, model.FormatCreation(g.Creation), g.Queue, model.FormatDuration(float64(g.Duration)), g.Winner, yesNo(g.Forfeit))

	table := newTable(w)
	table.Header(" ", "PLAYER", "CHAMPION", "RESULT")
	for _, p := range players {
		name, err := champs.Name(p.ChampionID)
		if err != nil {
			return err
		}
		marker := " "
		if highlight != "" && p.PlayerID == highlight {
			marker = ">"
		}
		table.Append(marker, p.PlayerID, name, Result(p.Win))
	}
	table.Render()
	return nil
}

// PrintOverview prints store-wide counts, the per-queue breakdown and the most frequent players.
func PrintOverview(w io.Writer, ov storage.Overview, queues []storage.QueueCount, top []storage.ActivePlayer) {
	forfeitShare, blueShare := model.NoData, model.NoData
	if ov.Games > 0 {
		forfeitShare = pct(float64(ov.Forfeits) / float64(ov.Games))
		blueShare = pct(float64(ov.BlueWins) / float64(ov.Games))
	}
	fmt.Fprintf(w, "\nGames: %d  |  Remakes: %d  |  Players seen: %d  |  Forfeits: %s  |  Blue wins: %s\n",
		ov.Games, ov.Remakes, ov.UniquePlayers, forfeitShare, blueShare)
	if ov.Earliest != "" {
		fmt.Fprintf(w, "Range: %s .. %s\n", ov.Earliest, ov.Latest)
	}

	if len(queues) > 0 {
		title(w, "Queues")
		table := newTable(w)
		table.Header("QUEUE", "GAMES", "FORFEITS", "AVG_DURATION")
		for _, q := range queues {
			table.Append(q.Queue.String(), strconv.Itoa(q.Games), strconv.Itoa(q.Forfeits), model.FormatDuration(q.AvgSec))
		}
		table.Render()
	}

	if len(top) > 0 {
		title(w, "Most seen players")
		table := newTable(w)
		table.Header("PLAYER", "GAMES", "W", "WR%")
		for _, p := range top {
			table.Append(p.PlayerID, strconv.Itoa(p.Games), strconv.Itoa(p.Wins), pct(float64(p.Wins)/float64(p.Games)))
		}
		table.Render()
	}
}

// PrintRaw prints the result of an arbitrary query.
func PrintRaw(w io.Writer, cols []string, rows [][]string) {
	headers := make([]any, len(cols))
	for i, c := range cols {
		headers[i] = c
	}
	table := newTable(w)
	table.Header(headers...)
	for _, r := range rows {
		rowAny := make([]any, len(r))
		for i, v := range r {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(w, "(%d rows)\n", len(rows))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
