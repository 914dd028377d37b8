package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent digest runs",
	Long:  "Prints the most recent runs from the history database (requires history.path in the config).",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.History.Path == "" {
		fmt.Fprintln(os.Stderr, "run history is disabled; set history.path in the config")
		os.Exit(1)
	}

	history, err := openHistory(cfg, logger)
	if err != nil {
		logger.Error("failed to open history", "error", err)
		os.Exit(1)
	}
	defer history.Close()

	runs, err := history.Recent(historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-20s %8s %10s %7s  %s\n", "Ran at (UTC)", "Fetched", "Delivered", "Status", "Error")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	for _, r := range runs {
		fmt.Fprintf(out, "%-20s %8d %10d %7d  %s\n",
			r.RanAt.UTC().Format("2006-01-02 15:04:05"), r.Fetched, r.Delivered, r.Status, r.Err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "(no runs recorded)")
	}
	return nil
}
