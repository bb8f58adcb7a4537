package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/pacing"
)

const (
	theMuseURL   = "https://www.themuse.com/api/public/jobs"
	theMusePages = 3
)

type theMuseJob struct {
	ID       flexString `json:"id"`
	Name     string     `json:"name"`
	URL      string     `json:"url"`
	Contents string     `json:"contents"`
	Refs     struct {
		LandingPage string `json:"landing_page"`
	} `json:"refs"`
	Company struct {
		Name string `json:"name"`
	} `json:"company"`
}

type theMuseResponse struct {
	Results []json.RawMessage `json:"results"`
}

// TheMuseAdapter pages through The Muse public jobs API. Skipped without a key.
type TheMuseAdapter struct {
	httpSource
	apiKey string
	pacer  *pacing.Pacer
}

// NewTheMuseAdapter creates a Muse adapter. pacer spaces page requests.
func NewTheMuseAdapter(apiKey string, client *http.Client, userAgent string, pacer *pacing.Pacer) *TheMuseAdapter {
	if pacer == nil {
		pacer = pacing.NewPacer(pacing.Policy{}, nil)
	}
	return &TheMuseAdapter{httpSource: newHTTPSource(client, userAgent), apiKey: apiKey, pacer: pacer}
}

func (a *TheMuseAdapter) Name() string { return SourceTheMuse }

func (a *TheMuseAdapter) Configured() bool { return a.apiKey != "" }

// FetchJobs reads pages 1 through 3. The first failing page stops paging;
// jobs from earlier pages are still returned alongside the error.
func (a *TheMuseAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	if !a.Configured() {
		return nil, nil
	}

	var jobs []model.Job
	for page := 1; page <= theMusePages; page++ {
		if err := a.pacer.Wait(ctx); err != nil {
			return jobs, fmt.Errorf("themuse fetch: %w", err)
		}

		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("api_key", a.apiKey)

		var resp theMuseResponse
		if err := a.getJSON(ctx, theMuseURL+"?"+q.Encode(), &resp); err != nil {
			return jobs, fmt.Errorf("themuse fetch page %d: %w", page, err)
		}
		for _, it := range decodeItems[theMuseJob](resp.Results) {
			jobs = append(jobs, model.Job{
				Source:      SourceTheMuse,
				ID:          string(it.ID),
				Company:     it.Company.Name,
				Position:    it.Name,
				URL:         firstNonEmpty(it.Refs.LandingPage, it.URL),
				Description: extractText(it.Contents),
			})
		}
	}
	return jobs, nil
}
