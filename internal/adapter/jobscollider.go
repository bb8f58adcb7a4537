package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/amishk599/autoapply/internal/model"
)

const jobsColliderURL = "https://jobscollider.com/api/search-jobs"

type jobsColliderJob struct {
	ID          flexString `json:"id"`
	URL         string     `json:"url"`
	CompanyName string     `json:"company_name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

type jobsColliderResponse struct {
	Jobs []json.RawMessage `json:"jobs"`
}

// JobsColliderAdapter searches JobsCollider's software development category.
type JobsColliderAdapter struct {
	httpSource
}

// NewJobsColliderAdapter creates a JobsCollider adapter.
func NewJobsColliderAdapter(client *http.Client, userAgent string) *JobsColliderAdapter {
	return &JobsColliderAdapter{httpSource: newHTTPSource(client, userAgent)}
}

func (a *JobsColliderAdapter) Name() string { return SourceJobsCollider }

func (a *JobsColliderAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	q := url.Values{}
	q.Set("query", "spring boot")
	q.Set("category", "software_development")

	var resp jobsColliderResponse
	if err := a.getJSON(ctx, jobsColliderURL+"?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("jobscollider fetch: %w", err)
	}

	items := decodeItems[jobsColliderJob](resp.Jobs)
	jobs := make([]model.Job, 0, len(items))
	for _, it := range items {
		jobs = append(jobs, model.Job{
			Source:      SourceJobsCollider,
			ID:          string(it.ID),
			Company:     it.CompanyName,
			Position:    it.Title,
			URL:         it.URL,
			Description: extractText(it.Description),
		})
	}
	return jobs, nil
}
