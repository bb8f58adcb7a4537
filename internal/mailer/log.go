package mailer

import (
	"context"
	"log/slog"

	"github.com/amishk599/autoapply/internal/model"
)

// LogSender renders applications and logs them instead of sending. Used for
// dry runs.
type LogSender struct {
	portfolioURL string
	senderName   string
	logger       *slog.Logger
}

var _ model.Sender = (*LogSender)(nil)

func NewLogSender(portfolioURL, senderName string, logger *slog.Logger) *LogSender {
	return &LogSender{portfolioURL: portfolioURL, senderName: senderName, logger: logger}
}

func (s *LogSender) Send(_ context.Context, to, company, position string) bool {
	if to == "" {
		return false
	}
	content, err := Render(company, position, s.portfolioURL, s.senderName)
	if err != nil {
		s.logger.Warn("could not render application", "to", to, "error", err)
		return false
	}
	s.logger.Info("dry run: would send application", "to", to, "subject", content.Subject)
	return true
}
