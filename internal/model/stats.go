package model

import (
	"fmt"
	"math"
	"time"
)

// NoData is printed wherever a group has no games behind it.
const NoData = "—"

// WinrateRow summarises one grouping key (champion or side).
type WinrateRow struct {
	Key        string  `json:"key"`
	ChampionID int     `json:"champion_id,omitempty"`
	Games      int     `json:"games"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Winrate    float64 `json:"winrate"`
	PValue     float64 `json:"p_value"`
}

// HasData reports whether the row is backed by at least one game.
func (r WinrateRow) HasData() bool { return r.Games > 0 }

// WinratePct formats the win rate as a percentage, or NoData.
func (r WinrateRow) WinratePct() string {
	if !r.HasData() {
		return NoData
	}
	return fmt.Sprintf("%.1f%%", r.Winrate*100)
}

// DeltaRow compares a champion's win rate on the subject's team with its win
// rate against the subject.
//
// WinrateAgainst is from the subject's perspective, so the champion's own win
// rate on the enemy team is 1-WinrateAgainst and Delta = WinrateWith-(1-WinrateAgainst).
type DeltaRow struct {
	Champion       string  `json:"champion"`
	GamesWith      int     `json:"games_with"`
	WinrateWith    float64 `json:"winrate_with"`
	GamesAgainst   int     `json:"games_against"`
	WinrateAgainst float64 `json:"winrate_against"`
	Delta          float64 `json:"delta"`
}

// Complete reports whether both sides of the comparison have games.
func (r DeltaRow) Complete() bool { return r.GamesWith > 0 && r.GamesAgainst > 0 }

// DurationStat is the mean duration of a group of games.
type DurationStat struct {
	Games       int     `json:"games"`
	MeanSeconds float64 `json:"mean_seconds"`
}

// String renders the mean as m:ss, or NoData for an empty group.
func (d DurationStat) String() string {
	if d.Games == 0 {
		return NoData
	}
	return FormatDuration(d.MeanSeconds)
}

// DurationGroup is the mean duration of games sharing a forfeit status and result.
type DurationGroup struct {
	Forfeit bool `json:"forfeit"`
	Win     bool `json:"win"`
	DurationStat
}

// DurationSummary holds every duration aggregate for a subject.
type DurationSummary struct {
	Overall DurationStat    `json:"overall"`
	Wins    DurationStat    `json:"wins"`
	Losses  DurationStat    `json:"losses"`
	Groups  []DurationGroup `json:"groups"`
}

// DurationBucket counts results for games whose duration falls in [StartSec, EndSec).
type DurationBucket struct {
	StartSec int `json:"start_sec"`
	EndSec   int `json:"end_sec"`
	Wins     int `json:"wins"`
	Losses   int `json:"losses"`
}

// Games returns the number of games in the bucket.
func (b DurationBucket) Games() int { return b.Wins + b.Losses }

// Label renders the bucket as a minute range, e.g. "25-30".
func (b DurationBucket) Label() string {
	return fmt.Sprintf("%d-%d", b.StartSec/60, b.EndSec/60)
}

// FormatDuration renders seconds as minutes:seconds, truncating fractions.
func FormatDuration(sec float64) string {
	if math.IsNaN(sec) || sec < 0 {
		return NoData
	}
	total := int(sec)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// TimeLayout is how game creation times are rendered.
const TimeLayout = "2006-01-02 15:04:05"

// FormatCreation renders an epoch-millisecond creation time in UTC.
func FormatCreation(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(TimeLayout)
}

// PlayerReport is the full aggregation result for one subject.
type PlayerReport struct {
	Subject   string           `json:"subject"`
	Games     int              `json:"games"`
	Wins      int              `json:"wins"`
	Oldest    string           `json:"oldest_game"`
	Newest    string           `json:"newest_game"`
	Champions []WinrateRow     `json:"champions"`
	Allies    []WinrateRow     `json:"allies"`
	Enemies   []WinrateRow     `json:"enemies"`
	Deltas    []DeltaRow       `json:"deltas"`
	Sides     []WinrateRow     `json:"sides"`
	Durations DurationSummary  `json:"durations"`
	Buckets   []DurationBucket `json:"duration_buckets"`
	Played    []string         `json:"played"`
	Unplayed  []string         `json:"unplayed"`
}
