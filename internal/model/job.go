package model

import (
	"context"
	"time"
)

// Unified representation of a job posting from any source. Lives for one run.
type Job struct {
	Source   string // source name, e.g. "remoteok"
	ID       string // source-specific id (feeds use the link)
	Company  string // employer display name, may be empty for feeds
	Position string // job title
	URL      string // canonical posting URL, the identity key

	// Only used by the relevance filter; never persisted.
	Description string
	Tags        []string
}

// AppliedRecord marks a job URL that already received an application.
type AppliedRecord struct {
	Source    string    `json:"source"`
	JobID     string    `json:"job_id"`
	JobURL    string    `json:"job_url"`
	Company   string    `json:"company"`
	AppliedAt time.Time `json:"applied_at"`
}

// JobFetcher fetches job postings from one source (e.g. RemoteOK).
type JobFetcher interface {
	Name() string
	FetchJobs(ctx context.Context) ([]Job, error)
}

// KeyedFetcher is implemented by sources that need an API key and are skipped
// when it is absent.
type KeyedFetcher interface {
	Configured() bool
}

// JobFilter decides whether a job is relevant.
type JobFilter interface {
	Match(job Job) bool
}

// AppliedStore loads and appends applied records.
type AppliedStore interface {
	Load() []AppliedRecord
	Append(rec AppliedRecord, records []AppliedRecord) ([]AppliedRecord, error)
}

// EmailFinder returns a best-guess contact address for a domain.
type EmailFinder interface {
	FindEmailForDomain(ctx context.Context, domain string) (string, bool)
}

// EmailVerifier judges whether an address can likely receive mail.
type EmailVerifier interface {
	IsDeliverable(ctx context.Context, email string) bool
}

// Sender delivers one application email. Failures are logged, never returned.
type Sender interface {
	Send(ctx context.Context, to, company, position string) bool
}

// Notifier reports a successful application on a side channel.
type Notifier interface {
	Report(ctx context.Context, position, company, jobURL string) bool
}
