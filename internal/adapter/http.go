package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/amishk599/autoapply/internal/model"
)

// DefaultUserAgent is sent on every source request.
const DefaultUserAgent = "AutoApply/1.0 (job application agent)"

// Source names, in the order discovery polls them.
const (
	SourceRemoteOK       = "remoteok"
	SourceRemotive       = "remotive"
	SourceJobicy         = "jobicy"
	SourceWorkingNomads  = "workingnomads"
	SourceJobsCollider   = "jobscollider"
	SourceWWR            = "wwr"
	SourceAdzuna         = "adzuna"
	SourceTheMuse        = "themuse"
	SourceRealWorkRemote = "realworkfromanywhere"
	SourceAuthenticJobs  = "authenticjobs"
)

// SourceNames lists every source in polling order.
var SourceNames = []string{
	SourceRemoteOK,
	SourceRemotive,
	SourceJobicy,
	SourceWorkingNomads,
	SourceJobsCollider,
	SourceWWR,
	SourceAdzuna,
	SourceTheMuse,
	SourceRealWorkRemote,
	SourceAuthenticJobs,
}

const maxBodyBytes = 16 << 20

// httpSource is embedded by every adapter. It owns the client and the
// User-Agent header.
type httpSource struct {
	client    *http.Client
	userAgent string
}

func newHTTPSource(client *http.Client, userAgent string) httpSource {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return httpSource{client: client, userAgent: userAgent}
}

// get performs a GET and returns the body. Non-2xx responses produce a
// *model.HTTPError.
func (s httpSource) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &model.HTTPError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return body, nil
}

// getJSON performs a GET and decodes the JSON body into v.
func (s httpSource) getJSON(ctx context.Context, rawURL string, v any) error {
	body, err := s.get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeItems decodes each raw item into T, silently dropping items whose
// shape does not match.
func decodeItems[T any](raw []json.RawMessage) []T {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var item T
		if err := json.Unmarshal(r, &item); err != nil {
			continue
		}
		out = append(out, item)
	}
	return out
}

// flexString accepts a JSON string or number. Sources disagree on id types.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %s", b)
	}
	*f = flexString(n.String())
	return nil
}

// flexTags accepts a JSON array of strings or a comma-separated string.
// Anything else decodes to no tags.
type flexTags []string

func (t *flexTags) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*t = list
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		var tags []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				tags = append(tags, part)
			}
		}
		*t = tags
		return nil
	}
	*t = nil
	return nil
}

// firstNonEmpty returns the first argument that is not blank.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
