package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/amishk599/autoapply/internal/model"
)

const authenticJobsURL = "https://authenticjobs.com/api/posts/search/"

type authenticJob struct {
	ID          flexString `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	ApplyURL    string     `json:"apply_url"`
	Description string     `json:"description"`
	Company     struct {
		Name string `json:"name"`
	} `json:"company"`
}

type authenticJobsResponse struct {
	Listings []json.RawMessage `json:"listings"`
}

// AuthenticJobsAdapter searches the Authentic Jobs API. Skipped without a key.
type AuthenticJobsAdapter struct {
	httpSource
	apiKey string
}

// NewAuthenticJobsAdapter creates an Authentic Jobs adapter.
func NewAuthenticJobsAdapter(apiKey string, client *http.Client, userAgent string) *AuthenticJobsAdapter {
	return &AuthenticJobsAdapter{httpSource: newHTTPSource(client, userAgent), apiKey: apiKey}
}

func (a *AuthenticJobsAdapter) Name() string { return SourceAuthenticJobs }

func (a *AuthenticJobsAdapter) Configured() bool { return a.apiKey != "" }

func (a *AuthenticJobsAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	if !a.Configured() {
		return nil, nil
	}

	q := url.Values{}
	q.Set("api_key", a.apiKey)
	q.Set("keywords", "spring boot java")

	var resp authenticJobsResponse
	if err := a.getJSON(ctx, authenticJobsURL+"?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("authenticjobs fetch: %w", err)
	}

	items := decodeItems[authenticJob](resp.Listings)
	jobs := make([]model.Job, 0, len(items))
	for _, it := range items {
		jobs = append(jobs, model.Job{
			Source:      SourceAuthenticJobs,
			ID:          string(it.ID),
			Company:     it.Company.Name,
			Position:    it.Title,
			URL:         firstNonEmpty(it.URL, it.ApplyURL),
			Description: extractText(it.Description),
		})
	}
	return jobs, nil
}
