package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-stats/internal/report"
	"github.com/pable/go-lol-stats/internal/storage"
)

var summaryTop int

// summaryCmd is the cobra command for displaying a high-level store overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the store",
	Long: `Display aggregate statistics about every stored game: game and remake counts,
players seen, date range, forfeit and blue-side win share, the queue breakdown
and the most frequently seen players.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().IntVar(&summaryTop, "top", 10, "number of most seen players to list")
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return printSummary(db, summaryTop)
}

func printSummary(db *storage.DB, top int) error {
	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.Games == 0 && ov.Remakes == 0 {
		fmt.Fprintln(os.Stdout, "No games stored yet. Run 'lolstats ingest <gameName#tagLine>' to add some.")
		return nil
	}
	queues, err := db.GetQueueCounts()
	if err != nil {
		return fmt.Errorf("get queue counts: %w", err)
	}
	players, err := db.GetTopPlayers(top)
	if err != nil {
		return fmt.Errorf("get top players: %w", err)
	}
	report.PrintOverview(os.Stdout, ov, queues, players)
	return nil
}
