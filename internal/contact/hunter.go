// Package contact turns a company domain into a verified contact address
// using the Hunter enrichment API.
package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/pacing"
)

const (
	hunterBaseURL   = "https://api.hunter.io/v2"
	hunterUserAgent = "AutoApply/1.0 (job application agent)"
)

// HunterPolicy is the pause kept after every Hunter call.
var HunterPolicy = pacing.Policy{After: 1500 * time.Millisecond}

type domainSearchResponse struct {
	Data struct {
		Emails []json.RawMessage `json:"emails"`
	} `json:"data"`
}

type hunterEmail struct {
	Value string `json:"value"`
	Email string `json:"email"`
}

type verifierResponse struct {
	Data struct {
		Status string `json:"status"`
	} `json:"data"`
}

// HunterClient wraps the two Hunter endpoints the pipeline uses. Every
// method returns a *model.CallError on failure.
type HunterClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	pacer   *pacing.Pacer
}

// NewHunterClient creates a client. client should carry the Hunter timeout;
// pacer supplies the post-call pause.
func NewHunterClient(apiKey string, client *http.Client, pacer *pacing.Pacer) *HunterClient {
	if client == nil {
		client = http.DefaultClient
	}
	if pacer == nil {
		pacer = pacing.NewPacer(HunterPolicy, nil)
	}
	return &HunterClient{apiKey: apiKey, baseURL: hunterBaseURL, client: client, pacer: pacer}
}

// Configured reports whether an API key is set.
func (c *HunterClient) Configured() bool { return c.apiKey != "" }

// DomainSearch returns the addresses Hunter knows for domain, in response
// order. Entries without a usable address are skipped.
func (c *HunterClient) DomainSearch(ctx context.Context, domain string) ([]string, error) {
	const op = "hunter domain-search"
	var resp domainSearchResponse
	if err := c.get(ctx, op, "/domain-search", url.Values{"domain": {domain}}, &resp); err != nil {
		return nil, err
	}

	var out []string
	for _, raw := range resp.Data.Emails {
		var e hunterEmail
		if err := json.Unmarshal(raw, &e); err != nil {
			continue
		}
		if addr := firstAddress(e); addr != "" {
			out = append(out, addr)
		}
	}
	return out, nil
}

// VerifyStatus returns Hunter's verdict for email, e.g. "valid" or
// "accept_all".
func (c *HunterClient) VerifyStatus(ctx context.Context, email string) (string, error) {
	const op = "hunter email-verifier"
	var resp verifierResponse
	if err := c.get(ctx, op, "/email-verifier", url.Values{"email": {email}}, &resp); err != nil {
		return "", err
	}
	return resp.Data.Status, nil
}

// get performs one GET against Hunter and decodes the body into v. The
// pacer's After pause runs on every exit path once a call is attempted.
func (c *HunterClient) get(ctx context.Context, op, path string, q url.Values, v any) error {
	if !c.Configured() {
		return &model.CallError{Op: op, Reason: model.ReasonNotConfigured}
	}
	defer c.pacer.Done(ctx)

	q.Set("api_key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return &model.CallError{Op: op, Reason: model.ReasonInvalidInput, Err: err}
	}
	req.Header.Set("User-Agent", hunterUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return &model.CallError{Op: op, Reason: model.ReasonTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &model.CallError{Op: op, Reason: model.ReasonStatus, Err: &model.HTTPError{StatusCode: resp.StatusCode}}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &model.CallError{Op: op, Reason: model.ReasonDecode, Err: err}
	}
	return nil
}

func firstAddress(e hunterEmail) string {
	if e.Value != "" {
		return e.Value
	}
	return e.Email
}
