// Package pipeline runs one application pass over freshly discovered jobs.
package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amishk599/autoapply/internal/domains"
	"github.com/amishk599/autoapply/internal/mailer"
	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/store"
)

// JobSource yields the deduplicated, relevant jobs for one run.
type JobSource interface {
	FetchAllJobs(ctx context.Context) []model.Job
}

// SkipReason names why a job did not receive an application.
type SkipReason string

const (
	SkipNoURL          SkipReason = "no_url"
	SkipAlreadyApplied SkipReason = "already_applied"
	SkipNoCompany      SkipReason = "no_company"
	SkipNoEmail        SkipReason = "no_email"
	SkipUndeliverable  SkipReason = "undeliverable"
	SkipSendFailed     SkipReason = "send_failed"
)

// Summary is the outcome of one run.
type Summary struct {
	Fetched      int
	Sent         int
	Notified     int
	RecordFailed int
	Cap          int
	CapReached   bool
	Interrupted  bool
	Skipped      map[SkipReason]int
}

// Components are the collaborators a Runner drives.
type Components struct {
	Jobs     JobSource
	Store    model.AppliedStore
	Finder   model.EmailFinder
	Verifier model.EmailVerifier
	Sender   model.Sender
	Notifier model.Notifier
}

// Runner owns the full application pipeline:
// discover → seen-check → company-check → resolve → find → verify → send →
// notify → record.
type Runner struct {
	c               Components
	maxApplications int
	logger          *slog.Logger
}

// NewRunner creates a runner that stops after maxApplications successful
// sends.
func NewRunner(c Components, maxApplications int, logger *slog.Logger) *Runner {
	return &Runner{c: c, maxApplications: maxApplications, logger: logger}
}

// Run performs one pass. Only successful sends count against the cap; a
// failed notification never prevents the record from being saved.
func (r *Runner) Run(ctx context.Context) Summary {
	sum := Summary{Cap: r.maxApplications, Skipped: make(map[SkipReason]int)}

	records := r.c.Store.Load()
	jobs := r.c.Jobs.FetchAllJobs(ctx)
	sum.Fetched = len(jobs)

	for _, job := range jobs {
		if ctx.Err() != nil {
			r.logger.Warn("run interrupted", "error", ctx.Err())
			sum.Interrupted = true
			break
		}
		if sum.Sent >= r.maxApplications {
			r.logger.Info("reached application cap", "cap", r.maxApplications)
			sum.CapReached = true
			break
		}

		reason, ok := r.apply(ctx, job, &records, &sum)
		if !ok {
			sum.Skipped[reason]++
		}
	}

	r.logger.Info("run complete",
		"fetched", sum.Fetched,
		"sent", sum.Sent,
		"cap", sum.Cap,
		"cap_reached", sum.CapReached,
		"skipped", sum.SkippedTotal(),
		"skipped_no_email", sum.Skipped[SkipNoEmail],
		"skipped_already_applied", sum.Skipped[SkipAlreadyApplied],
		"skipped_undeliverable", sum.Skipped[SkipUndeliverable],
		"skipped_send_failed", sum.Skipped[SkipSendFailed],
	)
	return sum
}

// apply takes one job through every step. It returns the skip reason and
// false when the job stops early.
func (r *Runner) apply(ctx context.Context, job model.Job, records *[]model.AppliedRecord, sum *Summary) (SkipReason, bool) {
	jobURL := strings.TrimSpace(job.URL)
	if jobURL == "" {
		return SkipNoURL, false
	}
	if store.IsApplied(jobURL, *records) {
		r.logger.Debug("skipped, already applied", "url", jobURL)
		return SkipAlreadyApplied, false
	}
	company := strings.TrimSpace(job.Company)
	if company == "" {
		return SkipNoCompany, false
	}

	to, ok := r.findEmail(ctx, company)
	if !ok {
		r.logger.Info("no email for company, skipping", "company", company)
		return SkipNoEmail, false
	}
	if !r.c.Verifier.IsDeliverable(ctx, to) {
		r.logger.Info("email not deliverable, skipping", "email", to, "company", company)
		return SkipUndeliverable, false
	}

	position := strings.TrimSpace(job.Position)
	if position == "" {
		position = mailer.DefaultPosition
	}
	if !r.c.Sender.Send(ctx, to, company, position) {
		return SkipSendFailed, false
	}

	if r.c.Notifier.Report(ctx, position, company, jobURL) {
		sum.Notified++
	}

	updated, err := r.c.Store.Append(model.AppliedRecord{
		Source:  job.Source,
		JobID:   job.ID,
		JobURL:  jobURL,
		Company: company,
	}, *records)
	*records = updated
	if err != nil {
		r.logger.Error("could not record application", "url", jobURL, "error", err)
		sum.RecordFailed++
	}

	sum.Sent++
	r.logger.Info("applied", "company", company, "position", position, "email", to, "url", jobURL)
	return "", true
}

// findEmail tries each candidate domain in order and returns the first
// address found.
func (r *Runner) findEmail(ctx context.Context, company string) (string, bool) {
	for _, domain := range domains.CandidateDomains(company) {
		if email, ok := r.c.Finder.FindEmailForDomain(ctx, domain); ok {
			return email, true
		}
	}
	return "", false
}

// SkippedTotal returns the number of jobs skipped for any reason.
func (s Summary) SkippedTotal() int {
	n := 0
	for _, c := range s.Skipped {
		n += c
	}
	return n
}
