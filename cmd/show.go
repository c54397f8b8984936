package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-stats/internal/report"
	"github.com/pable/go-lol-stats/internal/storage"
)

var showPlayer string

var showCmd = &cobra.Command{
	Use:   "show <game-id-prefix>",
	Short: "Show a stored game with its ten players",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showPlayer, "player", "", "highlight player PUUID")
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return showGame(db, args[0], showPlayer)
}

func showGame(db *storage.DB, prefix, highlight string) error {
	game, players, err := db.GetGameByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query game: %w", err)
	}
	if game == nil {
		fmt.Fprintf(os.Stderr, "No game found with id prefix %q\n", prefix)
		return nil
	}
	champs, err := loadChampions()
	if err != nil {
		return fmt.Errorf("load champions: %w", err)
	}
	return report.PrintGame(os.Stdout, game, players, champs, highlight)
}
