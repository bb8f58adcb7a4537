package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/amishk599/autoapply/internal/model"
)

var wwrFeedURLs = []string{
	"https://weworkremotely.com/categories/remote-programming-jobs.rss",
	"https://weworkremotely.com/categories/remote-back-end-programming-jobs.rss",
}

// WWRAdapter reads the We Work Remotely programming RSS feeds. Entry titles
// look like "Company: Position".
type WWRAdapter struct {
	httpSource
	feeds []string
}

// NewWWRAdapter creates a We Work Remotely adapter.
func NewWWRAdapter(client *http.Client, userAgent string) *WWRAdapter {
	return &WWRAdapter{httpSource: newHTTPSource(client, userAgent), feeds: wwrFeedURLs}
}

func (a *WWRAdapter) Name() string { return SourceWWR }

// FetchJobs returns entries from every feed that could be read, plus an
// error naming the feeds that failed.
func (a *WWRAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	items, err := a.fetchFeeds(ctx, a.feeds)
	if err != nil {
		err = fmt.Errorf("wwr fetch: %w", err)
	}

	jobs := make([]model.Job, 0, len(items))
	for _, it := range items {
		link := strings.TrimSpace(it.Link)
		company, position := splitFeedTitle(it.Title)
		jobs = append(jobs, model.Job{
			Source:   SourceWWR,
			ID:       link,
			Company:  company,
			Position: position,
			URL:      link,
		})
	}
	return jobs, err
}
