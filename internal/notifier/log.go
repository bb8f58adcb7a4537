package notifier

import (
	"context"
	"log/slog"

	"github.com/amishk599/autoapply/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes application reports to the given logger. Used when
// Telegram is not configured and for dry runs.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each report via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Report logs the application and returns true (stdout logging does not fail).
func (n *LogNotifier) Report(_ context.Context, position, company, jobURL string) bool {
	n.logger.Info("application report", "text", FormatReport(position, company, jobURL))
	return true
}
