package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/amishk599/autoapply/internal/model"
)

var realWorkFeedURLs = []string{
	"https://www.realworkfromanywhere.com/rss.xml",
	"https://www.realworkfromanywhere.com/remote-developer-jobs/rss.xml",
	"https://www.realworkfromanywhere.com/remote-backend-jobs/rss.xml",
}

// RealWorkFromAnywhereAdapter reads the Real Work From Anywhere RSS feeds.
// Entries carry no company name.
type RealWorkFromAnywhereAdapter struct {
	httpSource
	feeds []string
}

// NewRealWorkFromAnywhereAdapter creates a Real Work From Anywhere adapter.
func NewRealWorkFromAnywhereAdapter(client *http.Client, userAgent string) *RealWorkFromAnywhereAdapter {
	return &RealWorkFromAnywhereAdapter{httpSource: newHTTPSource(client, userAgent), feeds: realWorkFeedURLs}
}

func (a *RealWorkFromAnywhereAdapter) Name() string { return SourceRealWorkRemote }

func (a *RealWorkFromAnywhereAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	items, err := a.fetchFeeds(ctx, a.feeds)
	if err != nil {
		err = fmt.Errorf("realworkfromanywhere fetch: %w", err)
	}

	jobs := make([]model.Job, 0, len(items))
	for _, it := range items {
		link := strings.TrimSpace(it.Link)
		jobs = append(jobs, model.Job{
			Source:      SourceRealWorkRemote,
			ID:          link,
			Position:    strings.TrimSpace(it.Title),
			URL:         link,
			Description: extractText(it.Description),
		})
	}
	return jobs, err
}
