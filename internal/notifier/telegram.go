package notifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/amishk599/autoapply/internal/model"
)

const telegramBaseURL = "https://api.telegram.org"

// Ensure TelegramNotifier implements model.Notifier.
var _ model.Notifier = (*TelegramNotifier)(nil)

// TelegramNotifier reports each application to a Telegram chat through the
// Bot API.
type TelegramNotifier struct {
	botToken   string
	chatID     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewTelegramNotifier returns a notifier for the given bot and chat.
// httpClient should carry the Telegram timeout.
func NewTelegramNotifier(botToken, chatID string, httpClient *http.Client, logger *slog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		botToken:   botToken,
		chatID:     chatID,
		baseURL:    telegramBaseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// FormatReport builds the one-line report text.
func FormatReport(position, company, jobURL string) string {
	return fmt.Sprintf("Applied: %s @ %s – %s", position, company, jobURL)
}

// Report posts one message. Without credentials it does nothing and returns
// false; failures are logged, never returned.
func (n *TelegramNotifier) Report(ctx context.Context, position, company, jobURL string) bool {
	if n.botToken == "" || n.chatID == "" {
		n.logger.Debug("telegram report skipped, token or chat id not set")
		return false
	}
	if err := n.sendMessage(ctx, FormatReport(position, company, jobURL)); err != nil {
		n.logger.Warn("telegram report failed", "error", err)
		return false
	}
	n.logger.Info("telegram report sent", "company", company)
	return true
}

func (n *TelegramNotifier) sendMessage(ctx context.Context, text string) error {
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", text)

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		// The URL embeds the bot token; keep it out of logs.
		return fmt.Errorf("post to telegram: %w", redactToken(err, n.botToken))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("telegram returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}

func redactToken(err error, token string) error {
	if token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), token, "<redacted>"))
}

// SendTestMessage sends a sample report to verify the integration works.
func SendTestMessage(ctx context.Context, n model.Notifier) error {
	if !n.Report(ctx, "Test Notification", "AutoApply", "https://example.com/jobs/test") {
		return fmt.Errorf("test notification was not delivered")
	}
	return nil
}
