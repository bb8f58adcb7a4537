// Package discovery polls every job source in a fixed order, normalizes and
// filters the results, and removes duplicate postings.
package discovery

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amishk599/autoapply/internal/model"
)

// Discoverer runs the configured sources one after another.
type Discoverer struct {
	sources []model.JobFetcher
	filter  model.JobFilter
	logger  *slog.Logger
}

// NewDiscoverer creates a Discoverer over sources, which are polled in slice
// order.
func NewDiscoverer(sources []model.JobFetcher, filter model.JobFilter, logger *slog.Logger) *Discoverer {
	return &Discoverer{sources: sources, filter: filter, logger: logger}
}

// Sources returns the sources in polling order.
func (d *Discoverer) Sources() []model.JobFetcher { return d.sources }

// FetchAllJobs polls every source and returns the relevant jobs, first
// occurrence of each URL kept. A failing source is logged and contributes
// whatever it managed to collect. Cancellation stops polling between sources.
func (d *Discoverer) FetchAllJobs(ctx context.Context) []model.Job {
	var all []model.Job
	for _, src := range d.sources {
		if ctx.Err() != nil {
			d.logger.Warn("discovery interrupted", "error", ctx.Err())
			break
		}
		if kf, ok := src.(model.KeyedFetcher); ok && !kf.Configured() {
			d.logger.Debug("skipping source without API key", "source", src.Name())
			continue
		}

		jobs, err := src.FetchJobs(ctx)
		if err != nil {
			d.logger.Warn("source fetch failed", "source", src.Name(), "error", err)
		}

		valid, matched := 0, 0
		for _, job := range jobs {
			job, ok := Normalize(job)
			if !ok {
				continue
			}
			valid++
			if d.filter != nil && !d.filter.Match(job) {
				continue
			}
			matched++
			all = append(all, job)
		}

		d.logger.Info("polled source",
			"source", src.Name(),
			"fetched", len(jobs),
			"valid", valid,
			"matched", matched,
		)
	}

	deduped := DedupeByURL(all)
	d.logger.Info("discovery complete", "jobs", len(deduped), "duplicates", len(all)-len(deduped))
	return deduped
}

// Normalize trims a job's identity fields. It reports false for records
// without a URL or without both company and position.
func Normalize(job model.Job) (model.Job, bool) {
	job.ID = strings.TrimSpace(job.ID)
	job.Company = strings.TrimSpace(job.Company)
	job.Position = strings.TrimSpace(job.Position)
	job.URL = strings.TrimSpace(job.URL)
	if job.URL == "" || (job.Company == "" && job.Position == "") {
		return job, false
	}
	return job, true
}

// DedupeByURL keeps the first job for each URL, preserving order. Jobs with
// a blank URL are dropped.
func DedupeByURL(jobs []model.Job) []model.Job {
	seen := make(map[string]struct{}, len(jobs))
	out := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		u := strings.TrimSpace(j.URL)
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, j)
	}
	return out
}
