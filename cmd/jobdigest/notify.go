package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobdigest/internal/config"
	"github.com/amishk599/jobdigest/internal/model"
	"github.com/amishk599/jobdigest/internal/notifier"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notification subcommands",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test digest email",
	Long:  "Sends a one-row test digest through SendGrid to the configured recipient.",
	RunE:  runNotifyTest,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	d, err := sendTestEmail(context.Background(), cfg, newHTTPClient(cfg), logger)
	if err != nil {
		logger.Error("test email failed", "error", err, "status", d.StatusCode)
		os.Exit(1)
	}
	logger.Info("test email sent successfully", "to", cfg.Email.To, "status", d.StatusCode)
	return nil
}

// sendTestEmail checks the API key before anything goes out, then sends the
// one-row test digest.
func sendTestEmail(ctx context.Context, cfg *config.Config, httpClient *http.Client, logger *slog.Logger) (model.Delivery, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return model.Delivery{}, err
	}
	return notifier.SendTestMessage(ctx, setupNotifier(cfg, httpClient, logger))
}
