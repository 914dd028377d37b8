package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/amishk599/jobdigest/internal/adapter"
	"github.com/amishk599/jobdigest/internal/notifier"
)

// Built-in defaults, overridden by the YAML file and then by the environment.
const (
	DefaultSearchTerm       = "data analyst"
	DefaultHTTPTimeout      = 15 * time.Second
	DefaultPolitenessDelay  = 1 * time.Second
	DefaultInterval         = 24 * time.Hour
	DefaultHistoryRetention = 90 * 24 * time.Hour
	DefaultToEmail          = "jobs-digest@example.com"
)

// Environment variables consulted after the YAML file.
const (
	EnvAPIKey    = "SENDGRID_API_KEY"
	EnvToEmail   = "TO_EMAIL"
	EnvFromEmail = "FROM_EMAIL"
)

// Config is the root configuration for a digest run.
type Config struct {
	SearchTerm      string
	HTTPTimeout     time.Duration
	PolitenessDelay time.Duration
	UserAgent       string
	Email           EmailConfig
	Sources         SourcesConfig
	Schedule        ScheduleConfig
	History         HistoryConfig
}

// EmailConfig holds the SendGrid delivery settings.
type EmailConfig struct {
	APIKey  string
	To      string
	From    string
	Subject string
	Host    string
}

// SourceConfig toggles one job source and optionally points it elsewhere.
// Empty URLs fall back to the built-in listing for that source.
type SourceConfig struct {
	Enabled bool
	URL     string
	BaseURL string
}

// SourcesConfig lists the sources in fetch order.
type SourcesConfig struct {
	Remotive    SourceConfig
	TopStartups SourceConfig
	Wellfound   SourceConfig
}

// ScheduleConfig controls the start command.
type ScheduleConfig struct {
	Interval time.Duration
}

// HistoryConfig controls the optional SQLite run log. An empty Path disables it.
type HistoryConfig struct {
	Path      string
	Retention time.Duration
}

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	SearchTerm      string           `yaml:"search_term"`
	HTTPTimeout     string           `yaml:"http_timeout"`
	PolitenessDelay string           `yaml:"politeness_delay"`
	UserAgent       string           `yaml:"user_agent"`
	Email           rawEmailConfig   `yaml:"email"`
	Sources         rawSourcesConfig `yaml:"sources"`
	Schedule        struct {
		Interval string `yaml:"interval"`
	} `yaml:"schedule"`
	History struct {
		Path      string `yaml:"path"`
		Retention string `yaml:"retention"`
	} `yaml:"history"`
}

type rawEmailConfig struct {
	APIKey  string `yaml:"api_key"`
	To      string `yaml:"to"`
	From    string `yaml:"from"`
	Subject string `yaml:"subject"`
	Host    string `yaml:"host"`
}

type rawSourcesConfig struct {
	Remotive    rawSourceConfig `yaml:"remotive"`
	TopStartups rawSourceConfig `yaml:"topstartups"`
	Wellfound   rawSourceConfig `yaml:"wellfound"`
}

// Enabled is a pointer so an omitted key keeps the source on.
type rawSourceConfig struct {
	Enabled *bool  `yaml:"enabled"`
	URL     string `yaml:"url"`
	BaseURL string `yaml:"base_url"`
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment. Variables already set win. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Default returns the configuration used when no file is given, before the
// environment is applied.
func Default() *Config {
	return &Config{
		SearchTerm:      DefaultSearchTerm,
		HTTPTimeout:     DefaultHTTPTimeout,
		PolitenessDelay: DefaultPolitenessDelay,
		UserAgent:       adapter.DefaultUserAgent,
		Email: EmailConfig{
			Subject: notifier.DefaultSubject,
			Host:    notifier.DefaultSendGridHost,
		},
		Sources: SourcesConfig{
			Remotive:    SourceConfig{Enabled: true},
			TopStartups: SourceConfig{Enabled: true},
			Wellfound:   SourceConfig{Enabled: true},
		},
		Schedule: ScheduleConfig{Interval: DefaultInterval},
		History:  HistoryConfig{Retention: DefaultHistoryRetention},
	}
}

// Load builds the configuration from defaults, the YAML file at path (skipped
// when path is empty), and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := apply(cfg, data); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func apply(cfg *Config, data []byte) error {
	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	durations := []struct {
		key string
		val string
		dst *time.Duration
	}{
		{"http_timeout", raw.HTTPTimeout, &cfg.HTTPTimeout},
		{"politeness_delay", raw.PolitenessDelay, &cfg.PolitenessDelay},
		{"schedule.interval", raw.Schedule.Interval, &cfg.Schedule.Interval},
		{"history.retention", raw.History.Retention, &cfg.History.Retention},
	}
	for _, d := range durations {
		if d.val == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.val)
		if err != nil {
			return fmt.Errorf("parse %s %q: %w", d.key, d.val, err)
		}
		*d.dst = parsed
	}

	setString(&cfg.SearchTerm, raw.SearchTerm)
	setString(&cfg.UserAgent, raw.UserAgent)
	setString(&cfg.Email.APIKey, raw.Email.APIKey)
	setString(&cfg.Email.To, raw.Email.To)
	setString(&cfg.Email.From, raw.Email.From)
	setString(&cfg.Email.Subject, raw.Email.Subject)
	setString(&cfg.Email.Host, raw.Email.Host)
	cfg.History.Path = raw.History.Path

	applySource(&cfg.Sources.Remotive, raw.Sources.Remotive)
	applySource(&cfg.Sources.TopStartups, raw.Sources.TopStartups)
	applySource(&cfg.Sources.Wellfound, raw.Sources.Wellfound)
	return nil
}

func applySource(dst *SourceConfig, raw rawSourceConfig) {
	if raw.Enabled != nil {
		dst.Enabled = *raw.Enabled
	}
	setString(&dst.URL, raw.URL)
	setString(&dst.BaseURL, raw.BaseURL)
}

// applyEnv overlays the delivery variables. An empty variable counts as unset.
// FROM falls back to the resolved TO address.
func applyEnv(cfg *Config) {
	setString(&cfg.Email.APIKey, os.Getenv(EnvAPIKey))
	setString(&cfg.Email.To, os.Getenv(EnvToEmail))
	setString(&cfg.Email.From, os.Getenv(EnvFromEmail))

	if cfg.Email.To == "" {
		cfg.Email.To = DefaultToEmail
	}
	if cfg.Email.From == "" {
		cfg.Email.From = cfg.Email.To
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func validate(cfg *Config) error {
	if cfg.SearchTerm == "" {
		return fmt.Errorf("search_term must not be empty")
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %v", cfg.HTTPTimeout)
	}
	if cfg.PolitenessDelay < 0 {
		return fmt.Errorf("politeness_delay must not be negative, got %v", cfg.PolitenessDelay)
	}
	if cfg.Schedule.Interval <= 0 {
		return fmt.Errorf("schedule.interval must be positive, got %v", cfg.Schedule.Interval)
	}
	if cfg.History.Retention < 0 {
		return fmt.Errorf("history.retention must not be negative, got %v", cfg.History.Retention)
	}
	if _, err := mail.ParseAddress(cfg.Email.To); err != nil {
		return fmt.Errorf("email.to %q: %w", cfg.Email.To, err)
	}
	if _, err := mail.ParseAddress(cfg.Email.From); err != nil {
		return fmt.Errorf("email.from %q: %w", cfg.Email.From, err)
	}

	s := cfg.Sources
	if !s.Remotive.Enabled && !s.TopStartups.Enabled && !s.Wellfound.Enabled {
		return fmt.Errorf("at least one source must be enabled")
	}
	return nil
}

// RequireAPIKey returns notifier.ErrMissingAPIKey when no key is configured.
// check and preview skip it.
func (c *Config) RequireAPIKey() error {
	if strings.TrimSpace(c.Email.APIKey) == "" {
		return notifier.ErrMissingAPIKey
	}
	return nil
}
