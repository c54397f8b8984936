package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-stats/internal/aggregator"
	"github.com/pable/go-lol-stats/internal/model"
	"github.com/pable/go-lol-stats/internal/report"
	"github.com/pable/go-lol-stats/internal/storage"
)

// stats command flags.
var (
	statsQueue    string
	statsIngest   bool
	statsMinGames int
	statsAlpha    float64
	statsBucket   int
	statsChampion string
)

var statsCmd = &cobra.Command{
	Use:   "stats <gameName#tagLine|puuid>",
	Short: "Win-rate analysis over an account's stored games",
	Long: `Aggregates every stored game of one account: win rate per played champion, per
allied champion and per enemy champion (from your perspective), the with/against
delta, blue/red side, duration means split by forfeit and result, a duration
histogram and the champions never played. Rows with a binomial p-value below
--alpha are listed separately.

A Riot ID needs an API key to resolve; a PUUID works offline.

Examples:
  lolstats stats "Faker#KR1" --ingest
  lolstats stats <puuid> --queue ranked --min-games 5
  lolstats stats <puuid> --champion "Twisted Fate"`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsQueue, "queue", "sr", "queue filter: sr, ranked, soloq, flex, clash, normals")
	statsCmd.Flags().BoolVar(&statsIngest, "ingest", false, "ingest new matches before aggregating")
	statsCmd.Flags().IntVar(&statsMinGames, "min-games", 1, "hide champion rows with fewer games")
	statsCmd.Flags().Float64Var(&statsAlpha, "alpha", aggregator.DefaultAlpha, "significance threshold")
	statsCmd.Flags().StringVar(&statsChampion, "champion", "", "only games you played on this champion (name or slug)")
	statsCmd.Flags().IntVar(&statsBucket, "bucket", aggregator.DefaultBucketWidth/60, "duration histogram bucket width in minutes")
}

func runStats(cmd *cobra.Command, args []string) error {
	filter, err := model.ParseQueueFilter(statsQueue)
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

	puuid, err := subjectFor(ctx, db, args[0], filter, statsIngest)
	if err != nil {
		return err
	}
	rep, err := buildReport(ctx, db, puuid, filter, statsBucket, statsChampion)
	if err != nil {
		return err
	}
	if rep.Games == 0 {
		fmt.Fprintf(os.Stdout, "No stored games for %s. Run 'lolstats ingest <gameName#tagLine>' first.\n", args[0])
		return nil
	}
	if puuid != args[0] {
		rep.Subject = fmt.Sprintf("%s (%s)", args[0], puuid)
	}
	report.PrintReport(os.Stdout, rep, report.Options{MinGames: statsMinGames, Alpha: statsAlpha})
	return nil
}

// subjectFor returns the PUUID for arg. A Riot ID is resolved through the
// provider; with ingest set the account's new matches are stored first.
func subjectFor(ctx context.Context, db *storage.DB, arg string, filter model.QueueFilter, ingest bool) (string, error) {
	if !isRiotID(arg) && !ingest {
		return arg, nil
	}
	p, closeProvider, err := newProvider(ctx)
	if err != nil {
		return "", err
	}
	defer closeProvider()

	puuid := arg
	if isRiotID(arg) {
		if puuid, err = p.ResolveAccount(ctx, arg); err != nil {
			return "", fmt.Errorf("resolve %s: %w", arg, err)
		}
	}
	if ingest {
		res, err := runIngest(ctx, db, p, puuid, filter, 0)
		if err != nil {
			return "", err
		}
		res.Account = arg
		report.PrintIngestResult(os.Stdout, res)
	}
	return puuid, nil
}

// buildReport aggregates the stored history of puuid, optionally restricted
// to games played on champion.
func buildReport(ctx context.Context, db *storage.DB, puuid string, filter model.QueueFilter, bucketMinutes int, champion string) (*model.PlayerReport, error) {
	champs, err := loadChampions()
	if err != nil {
		return nil, fmt.Errorf("load champions: %w", err)
	}
	championID := 0
	if champion != "" {
		if championID, err = champs.ID(champion); err != nil {
			return nil, err
		}
	}
	snap, err := db.GamesForPlayer(ctx, puuid)
	if err != nil {
		return nil, err
	}
	return aggregator.Summarize(snap, puuid, champs, aggregator.Options{
		Queues:      filter,
		BucketWidth: bucketMinutes * 60,
		Champion:    championID,
	})
}
