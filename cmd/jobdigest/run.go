package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, dedupe and email one digest",
	Long:  "Runs one digest: fetches every enabled source, deduplicates, renders the HTML table and sends it through SendGrid. Exits non-zero if the key is missing or the send is rejected.",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		logger.Error("cannot send digest", "error", err)
		os.Exit(1)
	}

	history, err := openHistory(cfg, logger)
	if err != nil {
		logger.Error("failed to open history", "error", err)
		os.Exit(1)
	}
	if history != nil {
		defer history.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient := newHTTPClient(cfg)
	entries := enabledEntries(cfg, httpClient)
	d := buildDigest(cfg, entries, setupNotifier(cfg, httpClient, logger), runLogOf(history), logger)

	res, err := d.Run(ctx)
	if err != nil {
		logger.Error("digest run failed", "error", err)
		// os.Exit skips deferred calls.
		if history != nil {
			history.Close()
		}
		os.Exit(1)
	}

	logger.Info("digest sent",
		"fetched", res.Fetched,
		"unique", len(res.Jobs),
		"status", res.Delivery.StatusCode,
	)
	return nil
}
