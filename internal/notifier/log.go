package notifier

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/amishk599/jobdigest/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier logs the digest instead of sending it, optionally writing the
// HTML to out. Used for dry runs.
type LogNotifier struct {
	logger *slog.Logger
	out    io.Writer
}

// NewLogNotifier returns a notifier that logs each digest via slog. out may be nil.
func NewLogNotifier(logger *slog.Logger, out io.Writer) *LogNotifier {
	return &LogNotifier{logger: logger, out: out}
}

// Notify logs the digest size and row count.
func (n *LogNotifier) Notify(_ context.Context, html string) (model.Delivery, error) {
	n.logger.Info("digest ready (not sent)",
		"bytes", len(html),
		"rows", max(strings.Count(html, "<tr>")-1, 0),
	)
	if n.out != nil {
		if _, err := fmt.Fprintln(n.out, html); err != nil {
			return model.Delivery{}, fmt.Errorf("write digest: %w", err)
		}
	}
	return model.Delivery{}, nil
}
