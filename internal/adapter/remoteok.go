package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/amishk599/autoapply/internal/model"
)

const remoteOKURL = "https://remoteok.com/api"

// remoteOKJob is one element of the RemoteOK API array. The first element of
// the array is a legal notice, not a job.
type remoteOKJob struct {
	ID          flexString `json:"id"`
	Company     string     `json:"company"`
	Position    string     `json:"position"`
	URL         string     `json:"url"`
	ApplyURL    string     `json:"apply_url"`
	Tags        flexTags   `json:"tags"`
	Description string     `json:"description"`
}

// RemoteOKAdapter fetches jobs from the RemoteOK public API.
type RemoteOKAdapter struct {
	httpSource
}

// NewRemoteOKAdapter creates a RemoteOK adapter.
func NewRemoteOKAdapter(client *http.Client, userAgent string) *RemoteOKAdapter {
	return &RemoteOKAdapter{httpSource: newHTTPSource(client, userAgent)}
}

func (a *RemoteOKAdapter) Name() string { return SourceRemoteOK }

// FetchJobs retrieves the full RemoteOK listing.
func (a *RemoteOKAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	var raw []json.RawMessage
	if err := a.getJSON(ctx, remoteOKURL, &raw); err != nil {
		return nil, fmt.Errorf("remoteok fetch: %w", err)
	}
	if len(raw) < 2 {
		return nil, nil
	}

	items := decodeItems[remoteOKJob](raw[1:])
	jobs := make([]model.Job, 0, len(items))
	for _, it := range items {
		jobs = append(jobs, model.Job{
			Source:      SourceRemoteOK,
			ID:          string(it.ID),
			Company:     it.Company,
			Position:    it.Position,
			URL:         firstNonEmpty(it.URL, it.ApplyURL),
			Description: extractText(it.Description),
			Tags:        it.Tags,
		})
	}
	return jobs, nil
}
