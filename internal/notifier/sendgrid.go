package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	netmail "net/mail"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/amishk599/jobdigest/internal/model"
)

// Ensure SendGridNotifier implements model.Notifier.
var _ model.Notifier = (*SendGridNotifier)(nil)

// ErrMissingAPIKey is returned before any network call when no SendGrid key
// is configured. Without it no digest can be delivered.
var ErrMissingAPIKey = errors.New("SENDGRID_API_KEY not set in environment")

const (
	DefaultSendGridHost = "https://api.sendgrid.com"
	DefaultSubject      = "Daily Remote Data Analyst Jobs"
	sendEndpoint        = "/v3/mail/send"
)

// SendGridConfig holds the message envelope and credentials.
type SendGridConfig struct {
	APIKey  string
	From    string
	To      string
	Subject string
	Host    string // defaults to DefaultSendGridHost
}

// SendGridNotifier emails the digest through the SendGrid v3 mail API.
type SendGridNotifier struct {
	cfg    SendGridConfig
	client *rest.Client
	logger *slog.Logger
}

// NewSendGridNotifier returns a notifier sending through httpClient.
func NewSendGridNotifier(cfg SendGridConfig, httpClient *http.Client, logger *slog.Logger) *SendGridNotifier {
	if cfg.Host == "" {
		cfg.Host = DefaultSendGridHost
	}
	if cfg.Subject == "" {
		cfg.Subject = DefaultSubject
	}
	return &SendGridNotifier{
		cfg:    cfg,
		client: &rest.Client{HTTPClient: httpClient},
		logger: logger,
	}
}

// Notify sends html as a single email. A non-2xx provider status is returned
// as *model.HTTPError alongside the delivery, so callers can both log the
// status and fail the run.
func (s *SendGridNotifier) Notify(ctx context.Context, html string) (model.Delivery, error) {
	if strings.TrimSpace(s.cfg.APIKey) == "" {
		return model.Delivery{}, ErrMissingAPIKey
	}

	msg := mail.NewV3MailInit(
		address(s.cfg.From),
		s.cfg.Subject,
		address(s.cfg.To),
		mail.NewContent("text/html", html),
	)

	req := sendgrid.GetRequest(s.cfg.APIKey, sendEndpoint, s.cfg.Host)
	req.Method = rest.Post
	req.Body = mail.GetRequestBody(msg)

	resp, err := s.client.SendWithContext(ctx, req)
	if err != nil {
		return model.Delivery{}, fmt.Errorf("sendgrid send: %w", err)
	}

	d := model.Delivery{StatusCode: resp.StatusCode}
	s.logger.Info("email sent", "status", resp.StatusCode, "to", s.cfg.To, "bytes", len(html))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return d, &model.HTTPError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("sendgrid rejected message: %s", strings.TrimSpace(resp.Body)),
		}
	}
	return d, nil
}

// address splits "Name <addr>" into the display name and bare address SendGrid
// expects. Anything unparseable is passed through as the address.
func address(s string) *mail.Email {
	a, err := netmail.ParseAddress(s)
	if err != nil {
		return mail.NewEmail("", s)
	}
	return mail.NewEmail(a.Name, a.Address)
}
