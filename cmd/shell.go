package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-lol-stats/internal/aggregator"
	"github.com/pable/go-lol-stats/internal/model"
	"github.com/pable/go-lol-stats/internal/report"
	"github.com/pable/go-lol-stats/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the store. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cGreeting.Println("lolstats shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	ctx := cmd.Context()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("lolstats")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		name, args := tokens[0], tokens[1:]

		var err error
		switch name {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			err = shellList(db, args)
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <game-id-prefix> [<puuid>]")
				continue
			}
			highlight := ""
			if len(args) > 1 {
				highlight = args[1]
			}
			err = showGame(db, args[0], highlight)
		case "summary":
			err = printSummary(db, 10)
		case "stats":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: stats <puuid> [queue]")
				continue
			}
			err = shellStats(ctx, db, args)
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", name)
		}
		if err != nil {
			cError.Fprintf(os.Stderr, "[error] %v\n", err)
		}
	}
	return scanner.Err()
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list [n]", "list the n newest stored games (default 20)"},
		{"show <game-id-prefix> [<puuid>]", "show a game, highlighting one player"},
		{"summary", "store overview"},
		{"stats <puuid> [queue]", "win-rate analysis from stored games"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-38s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellList(db *storage.DB, args []string) error {
	limit := 20
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid count %q", args[0])
		}
		limit = n
	}
	games, err := db.ListGames(limit)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		cMuted.Println("No games stored yet.")
		return nil
	}
	report.PrintGames(os.Stdout, games)
	return nil
}

func shellStats(ctx context.Context, db *storage.DB, args []string) error {
	queue := "sr"
	if len(args) > 1 {
		queue = args[1]
	}
	filter, err := model.ParseQueueFilter(queue)
	if err != nil {
		return err
	}
	rep, err := buildReport(ctx, db, args[0], filter, aggregator.DefaultBucketWidth/60, "")
	if err != nil {
		return err
	}
	if rep.Games == 0 {
		cMuted.Printf("No stored games for %s.\n", args[0])
		return nil
	}
	report.PrintReport(os.Stdout, rep, report.Options{})
	return nil
}
