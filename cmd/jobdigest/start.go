package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobdigest/internal/scheduler"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the digest daemon",
	Long:  "Sends one digest immediately, then one every schedule.interval; blocks until SIGINT/SIGTERM.",
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		logger.Error("cannot start daemon", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"interval", cfg.Schedule.Interval.String(),
		"search_term", cfg.SearchTerm,
		"politeness_delay", cfg.PolitenessDelay.String(),
		"to", cfg.Email.To,
	)

	history, err := openHistory(cfg, logger)
	if err != nil {
		logger.Error("failed to open history", "error", err)
		os.Exit(1)
	}
	if history != nil {
		defer history.Close()
	}

	httpClient := newHTTPClient(cfg)
	d := buildDigest(cfg, enabledEntries(cfg, httpClient), setupNotifier(cfg, httpClient, logger), runLogOf(history), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(d, cfg.Schedule.Interval, logger)
	if err := sched.Run(ctx); err != nil {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
