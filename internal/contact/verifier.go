package contact

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amishk599/autoapply/internal/model"
)

// DeliverableStatuses are the Hunter verdicts treated as deliverable.
// Many corporate domains accept all mail, so accept_all counts.
var DeliverableStatuses = []string{"valid", "accept_all"}

// Verifier judges deliverability with Hunter. Without a key every
// well-formed address passes; on errors it fails closed.
type Verifier struct {
	hunter *HunterClient
	logger *slog.Logger
}

var _ model.EmailVerifier = (*Verifier)(nil)

// NewVerifier creates a Verifier. hunter may be unconfigured.
func NewVerifier(hunter *HunterClient, logger *slog.Logger) *Verifier {
	return &Verifier{hunter: hunter, logger: logger}
}

// IsDeliverable reports whether email is likely to receive mail.
func (v *Verifier) IsDeliverable(ctx context.Context, email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return false
	}
	if v.hunter == nil || !v.hunter.Configured() {
		return true
	}

	status, err := v.hunter.VerifyStatus(ctx, email)
	if err != nil {
		v.logger.Warn("hunter email verification failed", "email", email, "reason", model.ReasonOf(err), "error", err)
		return false
	}
	for _, s := range DeliverableStatuses {
		if status == s {
			return true
		}
	}
	v.logger.Debug("email not deliverable", "email", email, "status", status)
	return false
}
