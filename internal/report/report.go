// Package report renders aggregation results and store contents as tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-lol-stats/internal/aggregator"
	"github.com/pable/go-lol-stats/internal/model"
)

var (
	cTitle = color.New(color.FgCyan, color.Bold)
	cGood  = color.New(color.FgGreen)
	cBad   = color.New(color.FgRed)
	cError = color.New(color.FgRed, color.Bold)
)

// Options controls which rows PrintReport shows.
type Options struct {
	// MinGames hides champion rows with fewer games.
	MinGames int
	// Alpha is the significance threshold; 0 uses aggregator.DefaultAlpha.
	Alpha float64
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

func title(w io.Writer, s string) {
	fmt.Fprintln(w)
	cTitle.Fprintln(w, s)
}

func pct(v float64) string { return fmt.Sprintf("%.1f%%", v*100) }

func pvalue(r model.WinrateRow) string {
	if !r.HasData() {
		return model.NoData
	}
	if r.PValue < 0.001 {
		return "<0.001"
	}
	return fmt.Sprintf("%.3f", r.PValue)
}

// PrintHeader prints the one-line summary of a player report.
func PrintHeader(w io.Writer, rep *model.PlayerReport) {
	wr := model.NoData
	if rep.Games > 0 {
		wr = pct(float64(rep.Wins) / float64(rep.Games))
	}
	fmt.Fprintf(w, "\nPlayer: %s  |  Games: %d  |  W-L: %d-%d (%s)  |  Range: %s .. %s\n",
		rep.Subject, rep.Games, rep.Wins, rep.Games-rep.Wins, wr, rep.Oldest, rep.Newest)
}

// PrintWinrates prints one row per grouping key.
func PrintWinrates(w io.Writer, heading string, rows []model.WinrateRow) {
	title(w, heading)
	if len(rows) == 0 {
		fmt.Fprintln(w, model.NoData)
		return
	}
	table := newTable(w)
	table.Header("NAME", "GAMES", "W", "L", "WR%", "P")
	for _, r := range rows {
		table.Append(r.Key, strconv.Itoa(r.Games), strconv.Itoa(r.Wins), strconv.Itoa(r.Losses), r.WinratePct(), pvalue(r))
	}
	table.Render()
}

// PrintDeltas prints ally versus enemy win rates per champion.
// Rows missing either side show NoData.
func PrintDeltas(w io.Writer, rows []model.DeltaRow) {
	title(w, "With vs against (delta = WR with - champion WR against you)")
	if len(rows) == 0 {
		fmt.Fprintln(w, model.NoData)
		return
	}
	table := newTable(w)
	table.Header("CHAMPION", "GAMES_WITH", "WR_WITH", "GAMES_VS", "WR_VS", "DELTA")
	for _, r := range rows {
		with, vs, delta := model.NoData, model.NoData, model.NoData
		if r.GamesWith > 0 {
			with = pct(r.WinrateWith)
		}
		if r.GamesAgainst > 0 {
			vs = pct(r.WinrateAgainst)
		}
		if r.Complete() {
			delta = fmt.Sprintf("%+.1f", r.Delta*100)
		}
		table.Append(r.Champion, strconv.Itoa(r.GamesWith), with, strconv.Itoa(r.GamesAgainst), vs, delta)
	}
	table.Render()
}

// PrintDurations prints the duration means.
func PrintDurations(w io.Writer, d model.DurationSummary) {
	title(w, "Game durations")
	table := newTable(w)
	table.Header("GROUP", "GAMES", "MEAN")
	table.Append("all", strconv.Itoa(d.Overall.Games), d.Overall.String())
	table.Append("wins", strconv.Itoa(d.Wins.Games), d.Wins.String())
	table.Append("losses", strconv.Itoa(d.Losses.Games), d.Losses.String())
	for _, g := range d.Groups {
		table.Append(groupLabel(g), strconv.Itoa(g.Games), g.String())
	}
	table.Render()
}

func groupLabel(g model.DurationGroup) string {
	kind := "non-forfeit"
	if g.Forfeit {
		kind = "forfeit"
	}
	if g.Win {
		return kind + " win"
	}
	return kind + " loss"
}

// PrintBuckets prints the duration histogram in minutes.
func PrintBuckets(w io.Writer, buckets []model.DurationBucket) {
	title(w, "Results by duration (minutes)")
	if len(buckets) == 0 {
		fmt.Fprintln(w, model.NoData)
		return
	}
	table := newTable(w)
	table.Header("MINUTES", "GAMES", "W", "L", "WR%")
	for _, b := range buckets {
		wr := model.NoData
		if b.Games() > 0 {
			wr = pct(float64(b.Wins) / float64(b.Games()))
		}
		table.Append(b.Label(), strconv.Itoa(b.Games()), strconv.Itoa(b.Wins), strconv.Itoa(b.Losses), wr)
	}
	table.Render()
}

// PrintChampionLists prints played and unplayed champion names.
func PrintChampionLists(w io.Writer, played, unplayed []string) {
	title(w, fmt.Sprintf("Played (%d)", len(played)))
	fmt.Fprintln(w, joinOrNoData(played))
	title(w, fmt.Sprintf("Never played (%d)", len(unplayed)))
	fmt.Fprintln(w, joinOrNoData(unplayed))
}

func joinOrNoData(names []string) string {
	if len(names) == 0 {
		return model.NoData
	}
	return strings.Join(names, ", ")
}

// PrintReport prints every table of a player report.
func PrintReport(w io.Writer, rep *model.PlayerReport, opts Options) {
	alpha := opts.Alpha
	if alpha <= 0 {
		alpha = aggregator.DefaultAlpha
	}
	PrintHeader(w, rep)
	PrintWinrates(w, "Sides", rep.Sides)
	PrintWinrates(w, "Your champions", aggregator.MinGames(rep.Champions, opts.MinGames))
	PrintWinrates(w, "Allied champions", aggregator.MinGames(rep.Allies, opts.MinGames))
	PrintWinrates(w, "Enemy champions (your win rate against)", aggregator.MinGames(rep.Enemies, opts.MinGames))
	for _, s := range []struct {
		name string
		rows []model.WinrateRow
	}{
		{"your champions", rep.Champions},
		{"allies", rep.Allies},
		{"enemies", rep.Enemies},
	} {
		PrintWinrates(w, fmt.Sprintf("Significant %s (p < %.3g)", s.name, alpha), aggregator.Significant(s.rows, alpha))
	}
	PrintDeltas(w, rep.Deltas)
	PrintDurations(w, rep.Durations)
	PrintBuckets(w, rep.Buckets)
	PrintChampionLists(w, rep.Played, rep.Unplayed)
}

// Result colours a win or loss marker.
func Result(win bool) string {
	if win {
		return cGood.Sprint("W")
	}
	return cBad.Sprint("L")
}
