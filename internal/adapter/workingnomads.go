package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/amishk599/autoapply/internal/model"
)

const workingNomadsURL = "https://www.workingnomads.com/api/exposed_jobs/"

type workingNomadsJob struct {
	URL         string   `json:"url"`
	CompanyName string   `json:"company_name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        flexTags `json:"tags"`
}

// WorkingNomadsAdapter fetches the full Working Nomads export. The API has no
// search, so everything goes through the keyword filter. Jobs carry no id;
// the URL stands in.
type WorkingNomadsAdapter struct {
	httpSource
}

// NewWorkingNomadsAdapter creates a Working Nomads adapter.
func NewWorkingNomadsAdapter(client *http.Client, userAgent string) *WorkingNomadsAdapter {
	return &WorkingNomadsAdapter{httpSource: newHTTPSource(client, userAgent)}
}

func (a *WorkingNomadsAdapter) Name() string { return SourceWorkingNomads }

func (a *WorkingNomadsAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	var raw []json.RawMessage
	if err := a.getJSON(ctx, workingNomadsURL, &raw); err != nil {
		return nil, fmt.Errorf("workingnomads fetch: %w", err)
	}

	items := decodeItems[workingNomadsJob](raw)
	jobs := make([]model.Job, 0, len(items))
	for _, it := range items {
		jobs = append(jobs, model.Job{
			Source:      SourceWorkingNomads,
			ID:          it.URL,
			Company:     it.CompanyName,
			Position:    it.Title,
			URL:         it.URL,
			Description: extractText(it.Description),
			Tags:        it.Tags,
		})
	}
	return jobs, nil
}
