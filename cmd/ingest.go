package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-stats/internal/model"
	"github.com/pable/go-lol-stats/internal/report"
)

// ingest command flags.
var (
	// ingestQueue names the queue filter (sr, ranked, soloq, flex, clash, normals).
	ingestQueue string
	// ingestMaxPages caps matchlist pages per queue; 0 pages until exhausted.
	ingestMaxPages int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <gameName#tagLine>",
	Short: "Fetch an account's new matches into the store",
	Long: `Resolves a Riot ID, lists its match ids for the selected queues and fetches only
the matches not already stored. Forfeits are classified from the match timeline,
remakes are recorded separately, and the new rows are appended in one transaction.

Ids that keep failing after three attempts are reported and skipped; running the
command again picks them up.

Examples:
  lolstats ingest "Faker#KR1"
  lolstats ingest "Faker#KR1" --queue ranked --max-pages 2`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestCmd,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestQueue, "queue", "sr", "queue filter: sr, ranked, soloq, flex, clash, normals")
	ingestCmd.Flags().IntVar(&ingestMaxPages, "max-pages", 0, "matchlist pages of 100 per queue (0 = all)")
}

func runIngestCmd(cmd *cobra.Command, args []string) error {
	filter, err := model.ParseQueueFilter(ingestQueue)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	p, closeProvider, err := newProvider(ctx)
	if err != nil {
		return err
	}
	defer closeProvider()

	puuid, err := p.ResolveAccount(ctx, args[0])
	if err != nil {
		return fmt.Errorf("resolve %s: %w", args[0], err)
	}
	res, err := runIngest(ctx, db, p, puuid, filter, ingestMaxPages)
	if err != nil {
		return err
	}
	res.Account = args[0]
	report.PrintIngestResult(os.Stdout, res)
	return nil
}
