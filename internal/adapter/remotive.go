package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/amishk599/autoapply/internal/model"
)

const remotiveURL = "https://remotive.com/api/remote-jobs"

type remotiveJob struct {
	ID          flexString `json:"id"`
	URL         string     `json:"url"`
	CompanyName string     `json:"company_name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tags        flexTags   `json:"tags"`
}

type remotiveResponse struct {
	Jobs []json.RawMessage `json:"jobs"`
}

// RemotiveAdapter fetches software-dev jobs from the Remotive API. Remotive
// allows two requests per minute, so discovery wraps it with a 35s pause.
type RemotiveAdapter struct {
	httpSource
}

// NewRemotiveAdapter creates a Remotive adapter.
func NewRemotiveAdapter(client *http.Client, userAgent string) *RemotiveAdapter {
	return &RemotiveAdapter{httpSource: newHTTPSource(client, userAgent)}
}

func (a *RemotiveAdapter) Name() string { return SourceRemotive }

func (a *RemotiveAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	q := url.Values{}
	q.Set("category", "software-dev")
	q.Set("search", "spring boot")
	q.Set("limit", "100")

	var resp remotiveResponse
	if err := a.getJSON(ctx, remotiveURL+"?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("remotive fetch: %w", err)
	}

	items := decodeItems[remotiveJob](resp.Jobs)
	jobs := make([]model.Job, 0, len(items))
	for _, it := range items {
		jobs = append(jobs, model.Job{
			Source:      SourceRemotive,
			ID:          string(it.ID),
			Company:     it.CompanyName,
			Position:    it.Title,
			URL:         it.URL,
			Description: extractText(it.Description),
			Tags:        it.Tags,
		})
	}
	return jobs, nil
}
