package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List all job sources",
	Long:  "Reads the config and prints a table of the job sources in fetch order.",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-13s %-9s %s\n", "Source", "Status", "URL")
	fmt.Fprintln(out, strings.Repeat("─", 72))

	entries := sourceEntries(cfg, nil)
	enabled := 0
	for _, e := range entries {
		status := "disabled"
		if e.cfg.Enabled {
			status = "enabled"
			enabled++
		}
		fmt.Fprintf(out, "%-13s %-9s %s\n", e.name, status, e.cfg.URL)
	}

	fmt.Fprintf(out, "\nTotal: %d sources (%d enabled, %d disabled)\n", len(entries), enabled, len(entries)-enabled)
	fmt.Fprintf(out, "Search term: %q, politeness delay: %v\n", cfg.SearchTerm, cfg.PolitenessDelay)
	return nil
}
