package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobdigest/internal/notifier"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Build the digest once and print it, no email",
	Long:  "One-shot dry run: fetches every enabled source, deduplicates, and prints the rendered HTML to stdout. Does not send email or write history, and works without SENDGRID_API_KEY.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("check mode: digest will be printed, not sent")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient := newHTTPClient(cfg)
	n := notifier.NewLogNotifier(logger, cmd.OutOrStdout())
	d := buildDigest(cfg, enabledEntries(cfg, httpClient), n, nil, logger)

	res, err := d.Run(ctx)
	if err != nil {
		logger.Error("check failed", "error", err)
		os.Exit(1)
	}

	for _, c := range res.Counts {
		logger.Info("source summary", "source", c.Name, "jobs", c.Jobs)
	}
	logger.Info("check complete", "fetched", res.Fetched, "unique", len(res.Jobs))
	return nil
}
