package main

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobdigest/internal/adapter"
	"github.com/amishk599/jobdigest/internal/config"
	"github.com/amishk599/jobdigest/internal/digest"
	"github.com/amishk599/jobdigest/internal/model"
	"github.com/amishk599/jobdigest/internal/notifier"
	"github.com/amishk599/jobdigest/internal/ratelimit"
	"github.com/amishk599/jobdigest/internal/store"
)

const defaultConfigFile = "jobdigest.yaml"

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobdigest",
	Short: "Daily remote Data Analyst job digest",
	Long:  "jobdigest fetches remote Data Analyst postings from Remotive, TopStartups and Wellfound, deduplicates them and emails one HTML digest.",
	// With no subcommand, run one digest and exit.
	RunE:         runRun,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBDIGEST_CONFIG env var or ./jobdigest.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig loads .env, resolves the config path and parses it.
// Priority: explicit path arg > JOBDIGEST_CONFIG env var > "./jobdigest.yaml".
// The default file is optional; without it only defaults and the environment apply.
func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	if path == "" {
		if env := os.Getenv("JOBDIGEST_CONFIG"); env != "" {
			path = env
		} else if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func newHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.HTTPTimeout}
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) *notifier.SendGridNotifier {
	return notifier.NewSendGridNotifier(notifier.SendGridConfig{
		APIKey:  cfg.Email.APIKey,
		From:    cfg.Email.From,
		To:      cfg.Email.To,
		Subject: cfg.Email.Subject,
		Host:    cfg.Email.Host,
	}, httpClient, logger)
}

// sourceEntry pairs a configured source with how it appears in the digest.
type sourceEntry struct {
	name    string
	display string
	scraped bool
	cfg     config.SourceConfig
	fetcher model.JobFetcher
}

// sourceEntries lists every known source in fetch order, enabled or not.
func sourceEntries(cfg *config.Config, httpClient *http.Client) []sourceEntry {
	s := cfg.Sources
	topStartups := adapter.TopStartupsSource(s.TopStartups.URL, s.TopStartups.BaseURL)
	wellfound := adapter.WellfoundSource(s.Wellfound.URL, s.Wellfound.BaseURL)
	remotiveURL := s.Remotive.URL
	if remotiveURL == "" {
		remotiveURL = adapter.RemotiveURL
	}

	return []sourceEntry{
		{
			name:    "remotive",
			display: "Remotive API",
			cfg:     config.SourceConfig{Enabled: s.Remotive.Enabled, URL: remotiveURL},
			fetcher: adapter.NewRemotiveAdapter(remotiveURL, cfg.SearchTerm, cfg.UserAgent, httpClient),
		},
		{
			name:    topStartups.Name,
			display: "TopStartups",
			scraped: true,
			cfg:     config.SourceConfig{Enabled: s.TopStartups.Enabled, URL: topStartups.URL, BaseURL: topStartups.BaseURL},
			fetcher: adapter.NewScrapeAdapter(topStartups, cfg.SearchTerm, cfg.UserAgent, httpClient),
		},
		{
			name:    wellfound.Name,
			display: "Wellfound",
			scraped: true,
			cfg:     config.SourceConfig{Enabled: s.Wellfound.Enabled, URL: wellfound.URL, BaseURL: wellfound.BaseURL},
			fetcher: adapter.NewScrapeAdapter(wellfound, cfg.SearchTerm, cfg.UserAgent, httpClient),
		},
	}
}

func enabledEntries(cfg *config.Config, httpClient *http.Client) []sourceEntry {
	var out []sourceEntry
	for _, e := range sourceEntries(cfg, httpClient) {
		if e.cfg.Enabled {
			out = append(out, e)
		}
	}
	return out
}

// attribution names the sources a digest is built from.
func attribution(entries []sourceEntry) string {
	names := make([]string, 0, len(entries))
	scraped := false
	for _, e := range entries {
		names = append(names, e.display)
		scraped = scraped || e.scraped
	}
	line := "Source: " + strings.Join(names, " + ")
	if scraped {
		line += " (best-effort scraping)"
	}
	return line
}

func buildDigest(cfg *config.Config, entries []sourceEntry, n model.Notifier, runLog model.RunLog, logger *slog.Logger) *digest.Digest {
	sources := make([]digest.Source, 0, len(entries))
	for _, e := range entries {
		sources = append(sources, digest.Source{Name: e.name, Fetcher: e.fetcher})
		logger.Debug("registered source", "source", e.name, "url", e.cfg.URL)
	}
	return digest.New(sources, ratelimit.NewPacer(cfg.PolitenessDelay), n, runLog, attribution(entries), logger)
}

// openHistory opens the run history when history.path is set and prunes runs
// past the retention window. It returns nil when history is disabled.
func openHistory(cfg *config.Config, logger *slog.Logger) (*store.SQLiteStore, error) {
	if cfg.History.Path == "" {
		return nil, nil
	}
	s, err := store.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return nil, err
	}
	if cfg.History.Retention > 0 {
		if err := s.Cleanup(cfg.History.Retention); err != nil {
			logger.Warn("history cleanup failed", "error", err)
		}
	}
	logger.Info("run history enabled", "path", cfg.History.Path)
	return s, nil
}

// runLogOf avoids handing a typed nil to the digest.
func runLogOf(s *store.SQLiteStore) model.RunLog {
	if s == nil {
		return nil
	}
	return s
}
