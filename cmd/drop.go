package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-stats/internal/storage"
)

var dropForce bool

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the match store",
	Long: `Permanently delete the SQLite store and its WAL files. Every ingested game and
remake is lost; 'lolstats ingest' rebuilds it from the Riot API.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "delete without asking for confirmation")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if !dropForce {
		cWarn.Fprintf(os.Stderr, "drop would delete %s; pass --force to confirm\n", dbPath)
		return nil
	}
	existed, err := storage.Remove(dbPath)
	if err != nil {
		return fmt.Errorf("remove store: %w", err)
	}
	if !existed {
		fmt.Fprintf(os.Stdout, "No store at %s.\n", dbPath)
		return nil
	}
	fmt.Fprintf(os.Stdout, "Deleted %s\n", dbPath)
	return nil
}
