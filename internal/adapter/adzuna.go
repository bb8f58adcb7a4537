package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/pacing"
)

const adzunaBaseURL = "https://api.adzuna.com/v1/api/jobs"

var adzunaCountries = []string{"gb", "us"}

type adzunaJob struct {
	ID          flexString `json:"id"`
	RedirectURL string     `json:"redirect_url"`
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
}

type adzunaResponse struct {
	Results []json.RawMessage `json:"results"`
}

// AdzunaAdapter searches the Adzuna API once per country. It needs an app id
// and key and is skipped without them.
type AdzunaAdapter struct {
	httpSource
	appID  string
	appKey string
	pacer  *pacing.Pacer
}

// NewAdzunaAdapter creates an Adzuna adapter. pacer spaces the per-country
// requests; nil means no spacing.
func NewAdzunaAdapter(appID, appKey string, client *http.Client, userAgent string, pacer *pacing.Pacer) *AdzunaAdapter {
	if pacer == nil {
		pacer = pacing.NewPacer(pacing.Policy{}, nil)
	}
	return &AdzunaAdapter{
		httpSource: newHTTPSource(client, userAgent),
		appID:      appID,
		appKey:     appKey,
		pacer:      pacer,
	}
}

func (a *AdzunaAdapter) Name() string { return SourceAdzuna }

// Configured reports whether both the app id and key are set.
func (a *AdzunaAdapter) Configured() bool { return a.appID != "" && a.appKey != "" }

// FetchJobs queries each country in turn. A failing country is reported in
// the returned error without discarding the others.
func (a *AdzunaAdapter) FetchJobs(ctx context.Context) ([]model.Job, error) {
	if !a.Configured() {
		return nil, nil
	}

	var jobs []model.Job
	var errs []error
	for _, country := range adzunaCountries {
		if err := a.pacer.Wait(ctx); err != nil {
			errs = append(errs, err)
			break
		}

		q := url.Values{}
		q.Set("app_id", a.appID)
		q.Set("app_key", a.appKey)
		q.Set("what", "spring boot java backend")
		u := fmt.Sprintf("%s/%s/search/1?%s", adzunaBaseURL, country, q.Encode())

		var resp adzunaResponse
		if err := a.getJSON(ctx, u, &resp); err != nil {
			errs = append(errs, fmt.Errorf("country %s: %w", country, err))
			continue
		}
		for _, it := range decodeItems[adzunaJob](resp.Results) {
			jobs = append(jobs, model.Job{
				Source:      SourceAdzuna,
				ID:          string(it.ID),
				Company:     it.Company.DisplayName,
				Position:    it.Title,
				URL:         firstNonEmpty(it.RedirectURL, it.URL),
				Description: extractText(it.Description),
			})
		}
	}

	if err := errors.Join(errs...); err != nil {
		return jobs, fmt.Errorf("adzuna fetch: %w", err)
	}
	return jobs, nil
}
