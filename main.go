// Package main is the entry point for the lolstats CLI, which ingests League of
// Legends match history into a local store and reports win-rate statistics.
package main

import "github.com/pable/go-lol-stats/cmd"

func main() {
	cmd.Execute()
}
