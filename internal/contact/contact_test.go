package contact

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/pacing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// pauseRecorder counts pacing pauses without sleeping.
type pauseRecorder struct {
	mu     sync.Mutex
	pauses []time.Duration
}

func (p *pauseRecorder) sleep(_ context.Context, d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pauses = append(p.pauses, d)
	return nil
}

func (p *pauseRecorder) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pauses)
}

func newTestHunter(t *testing.T, apiKey string, handler http.HandlerFunc) (*HunterClient, *pauseRecorder) {
	t.Helper()
	rec := &pauseRecorder{}
	c := NewHunterClient(apiKey, nil, pacing.NewPacer(HunterPolicy, rec.sleep))
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		c.baseURL = srv.URL
		c.client = srv.Client()
	}
	return c, rec
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestPickAddress(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       string
		wantOK     bool
	}{
		{"preference beats list order", []string{"info@x.com", "jobs@x.com"}, "jobs@x.com", true},
		{"hr first", []string{"careers@x.com", "hr@x.com", "jobs@x.com"}, "hr@x.com", true},
		{"prefix match is case-insensitive", []string{"Careers@X.com"}, "careers@x.com", true},
		{"fallback to first address", []string{"not-an-email", "jane.doe@x.com", "john@x.com"}, "jane.doe@x.com", true},
		{"nothing usable", []string{"nobody", ""}, "", false},
		{"empty", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickAddress(tt.candidates)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("pickAddress(%v) = (%q, %v), want (%q, %v)", tt.candidates, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFinder_NoKeyGuessesJobsMailbox(t *testing.T) {
	hunter, rec := newTestHunter(t, "", nil)
	f := NewFinder(hunter, discardLogger())

	tests := []struct {
		domain string
		want   string
		wantOK bool
	}{
		{"acmecorp.com", "jobs@acmecorp.com", true},
		{"  AcmeCorp.IO ", "jobs@acmecorp.io", true},
		{"", "", false},
		{"acme corp.com", "", false},
		{"acme.com/careers", "", false},
		{"me@acme.com", "", false},
		{strings.Repeat("a", 250) + ".com", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			got, ok := f.FindEmailForDomain(context.Background(), tt.domain)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FindEmailForDomain(%q) = (%q, %v), want (%q, %v)", tt.domain, got, ok, tt.want, tt.wantOK)
			}
		})
	}
	if rec.count() != 0 {
		t.Errorf("no Hunter call means no pause, got %d", rec.count())
	}
}

func TestFinder_UsesHunter(t *testing.T) {
	var gotQuery string
	hunter, rec := newTestHunter(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		if r.URL.Path != "/domain-search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"data": {"emails": [
			{"value": "info@acme.com"},
			{"value": 42},
			"garbage",
			{"email": "Jobs@Acme.com"}
		]}}`))
	})
	f := NewFinder(hunter, discardLogger())

	got, ok := f.FindEmailForDomain(context.Background(), "Acme.com")
	if !ok || got != "jobs@acme.com" {
		t.Errorf("got (%q, %v), want jobs@acme.com", got, ok)
	}
	if !strings.Contains(gotQuery, "domain=acme.com") || !strings.Contains(gotQuery, "api_key=secret") {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if rec.count() != 1 {
		t.Errorf("expected one pause after the call, got %d", rec.count())
	}
}

func TestFinder_HunterFailureFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"malformed body", jsonHandler(`{"data": `)},
		{"no emails", jsonHandler(`{"data": {"emails": []}}`)},
		{"emails not a list", jsonHandler(`{"data": {"emails": "none"}}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hunter, rec := newTestHunter(t, "secret", tt.handler)
			got, ok := NewFinder(hunter, discardLogger()).FindEmailForDomain(context.Background(), "acme.com")
			if !ok || got != "jobs@acme.com" {
				t.Errorf("got (%q, %v), want jobs@acme.com fallback", got, ok)
			}
			if rec.count() != 1 {
				t.Errorf("expected pause on every exit path, got %d", rec.count())
			}
		})
	}
}

func TestHunterClient_Errors(t *testing.T) {
	hunter, _ := newTestHunter(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	_, err := hunter.DomainSearch(context.Background(), "acme.com")
	if model.ReasonOf(err) != model.ReasonStatus {
		t.Fatalf("reason = %q, want status", model.ReasonOf(err))
	}
	if !strings.Contains(err.Error(), "HTTP 401") {
		t.Errorf("expected status code in error, got %v", err)
	}

	unconfigured, rec := newTestHunter(t, "", nil)
	if _, err := unconfigured.VerifyStatus(context.Background(), "a@b.com"); model.ReasonOf(err) != model.ReasonNotConfigured {
		t.Errorf("reason = %q, want not_configured", model.ReasonOf(err))
	}
	if rec.count() != 0 {
		t.Error("unconfigured client must not pause")
	}
}

func TestHunterClient_Transport(t *testing.T) {
	hunter, rec := newTestHunter(t, "secret", nil)
	hunter.baseURL = "http://127.0.0.1:1"
	_, err := hunter.VerifyStatus(context.Background(), "a@b.com")
	if model.ReasonOf(err) != model.ReasonTransport {
		t.Fatalf("reason = %q, want transport", model.ReasonOf(err))
	}
	if rec.count() != 1 {
		t.Errorf("expected pause after transport failure, got %d", rec.count())
	}
}

func TestVerifier_NoKey(t *testing.T) {
	hunter, _ := newTestHunter(t, "", nil)
	v := NewVerifier(hunter, discardLogger())

	if !v.IsDeliverable(context.Background(), "a@b") {
		t.Error("expected a@b to be deliverable without a key")
	}
	if v.IsDeliverable(context.Background(), "no-at-sign") {
		t.Error("expected address without @ to be undeliverable")
	}
	if v.IsDeliverable(context.Background(), "  ") {
		t.Error("expected blank address to be undeliverable")
	}
	if !NewVerifier(nil, discardLogger()).IsDeliverable(context.Background(), "a@b") {
		t.Error("nil hunter behaves like no key")
	}
}

func TestVerifier_WithHunter(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    bool
	}{
		{"valid", jsonHandler(`{"data": {"status": "valid"}}`), true},
		{"accept_all", jsonHandler(`{"data": {"status": "accept_all"}}`), true},
		{"invalid", jsonHandler(`{"data": {"status": "invalid"}}`), false},
		{"unknown", jsonHandler(`{"data": {"status": "unknown"}}`), false},
		{"missing data", jsonHandler(`{}`), false},
		{"server error fails closed", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hunter, rec := newTestHunter(t, "secret", tt.handler)
			got := NewVerifier(hunter, discardLogger()).IsDeliverable(context.Background(), " HR@Acme.com ")
			if got != tt.want {
				t.Errorf("IsDeliverable = %v, want %v", got, tt.want)
			}
			if rec.count() != 1 {
				t.Errorf("expected one pause, got %d", rec.count())
			}
		})
	}
}

func TestVerifier_SendsNormalizedEmail(t *testing.T) {
	var gotEmail string
	hunter, _ := newTestHunter(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		gotEmail = r.URL.Query().Get("email")
		if r.URL.Path != "/email-verifier" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"data": {"status": "valid"}}`))
	})
	NewVerifier(hunter, discardLogger()).IsDeliverable(context.Background(), " HR@Acme.com ")
	if gotEmail != "hr@acme.com" {
		t.Errorf("email param = %q, want hr@acme.com", gotEmail)
	}
}
