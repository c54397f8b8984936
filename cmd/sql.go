package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-stats/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the store",
	Long: `Run an arbitrary SQL query against the store and print results as a table.

Schema overview:
  games(game_id, queue, duration, winner, forfeit, creation)
    winner is 100 (blue) or 200 (red); creation is epoch milliseconds
  players(game_id, player_id, champion_id, win)
  remakes(game_id, queue, duration, creation)

Example:
  lolstats sql "SELECT champion_id, COUNT(*), AVG(win) FROM players WHERE player_id = '<puuid>' GROUP BY 1"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stdout, "(no rows)")
		return nil
	}
	report.PrintRaw(os.Stdout, cols, rows)
	return nil
}
