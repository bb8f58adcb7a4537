package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/amishk599/autoapply/internal/model"
)

const jobicyURL = "https://jobicy.com/api/v2/remote-jobs"

type jobicyJob struct {
	ID          flexString `json:"id"`
	URL         string     `json:"url"`
	CompanyName string     `json:"companyName"`
	JobTitle    string     `json:"jobTitle"`
	JobExcerpt  string     `json:"jobExcerpt"`
}

type jobicyResponse struct {
	Jobs []json.RawMessage `json:"jobs"`
}

// JobicyAdapter fetches jobs tagged "spring boot" from the Jobicy API.
type JobicyAdapter struct {
	httpSource
}

// NewJobicyAdapter creates a Jobicy adapter.
func NewJobicyAdapter(client *http.Client, userAgent string) *JobicyAdapter {
	return &JobicyAdapter{httpSource: newHTTPSource(client, userAgent)}
}

func (a *JobicyAdapter) Name() string { return SourceJobicy }

func (a *JobicyAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	q := url.Values{}
	q.Set("tag", "spring boot")
	q.Set("count", "100")

	var resp jobicyResponse
	if err := a.getJSON(ctx, jobicyURL+"?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("jobicy fetch: %w", err)
	}

	items := decodeItems[jobicyJob](resp.Jobs)
	jobs := make([]model.Job, 0, len(items))
	for _, it := range items {
		jobs = append(jobs, model.Job{
			Source:      SourceJobicy,
			ID:          string(it.ID),
			Company:     it.CompanyName,
			Position:    it.JobTitle,
			URL:         it.URL,
			Description: extractText(it.JobExcerpt),
		})
	}
	return jobs, nil
}
