package contact

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amishk599/autoapply/internal/model"
)

// PreferredPrefixes ranks the mailbox names most likely to reach hiring.
var PreferredPrefixes = []string{"hr@", "jobs@", "careers@", "contact@", "info@"}

const maxDomainLength = 253

// Finder picks one contact address per domain: Hunter's best match when a
// key is configured, else the jobs@ mailbox.
type Finder struct {
	hunter *HunterClient
	logger *slog.Logger
}

var _ model.EmailFinder = (*Finder)(nil)

// NewFinder creates a Finder. hunter may be unconfigured.
func NewFinder(hunter *HunterClient, logger *slog.Logger) *Finder {
	return &Finder{hunter: hunter, logger: logger}
}

// FindEmailForDomain returns a contact address for domain, or false when the
// domain is unusable.
func (f *Finder) FindEmailForDomain(ctx context.Context, domain string) (string, bool) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if !validDomain(domain) {
		return "", false
	}

	if f.hunter != nil && f.hunter.Configured() {
		candidates, err := f.hunter.DomainSearch(ctx, domain)
		if err != nil {
			f.logger.Warn("hunter domain search failed", "domain", domain, "reason", model.ReasonOf(err), "error", err)
		} else if addr, ok := pickAddress(candidates); ok {
			return addr, true
		}
	}

	return guessAddress(domain)
}

// pickAddress applies the preference order: prefix order is the outer loop,
// so a later hr@ beats an earlier info@. Without a preferred match the first
// candidate containing "@" wins.
func pickAddress(candidates []string) (string, bool) {
	for _, prefix := range PreferredPrefixes {
		for _, c := range candidates {
			addr := strings.ToLower(strings.TrimSpace(c))
			if strings.HasPrefix(addr, prefix) {
				return addr, true
			}
		}
	}
	for _, c := range candidates {
		addr := strings.TrimSpace(c)
		if strings.Contains(addr, "@") {
			return addr, true
		}
	}
	return "", false
}

func guessAddress(domain string) (string, bool) {
	if len(domain) > maxDomainLength {
		return "", false
	}
	return "jobs@" + domain, true
}

func validDomain(domain string) bool {
	return domain != "" && !strings.ContainsAny(domain, " /@")
}
