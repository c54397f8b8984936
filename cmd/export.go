package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-stats/internal/aggregator"
	"github.com/pable/go-lol-stats/internal/model"
)

var (
	exportQueue  string
	exportBucket int
	exportOut    string
)

// exportFile is the JSON document written by export.
type exportFile struct {
	GeneratedAt string `json:"generated_at"`
	Queue       string `json:"queue"`
	*model.PlayerReport
}

var exportCmd = &cobra.Command{
	Use:   "export <puuid|gameName#tagLine>",
	Short: "Write an account's full aggregation as JSON",
	Long: `Runs the same aggregation as 'stats' over the stored games and writes the result
as JSON. Groups without games carry zero counts and a p-value of 1; no field is NaN.

Example:
  lolstats export <puuid> --out faker.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportQueue, "queue", "sr", "queue filter: sr, ranked, soloq, flex, clash, normals")
	exportCmd.Flags().IntVar(&exportBucket, "bucket", aggregator.DefaultBucketWidth/60, "duration histogram bucket width in minutes")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	filter, err := model.ParseQueueFilter(exportQueue)
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

	puuid, err := subjectFor(ctx, db, args[0], filter, false)
	if err != nil {
		return err
	}
	rep, err := buildReport(ctx, db, puuid, filter, exportBucket, "")
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(exportFile{
		GeneratedAt:  time.Now().UTC().Format(model.TimeLayout),
		Queue:        exportQueue,
		PlayerReport: rep,
	}); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if exportOut != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d games for %s to %s\n", rep.Games, args[0], exportOut)
	}
	return nil
}
