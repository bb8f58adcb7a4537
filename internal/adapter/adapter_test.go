package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/amishk599/autoapply/internal/model"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// rewriteClient returns a client that sends every request to srv regardless
// of the URL host, so adapters can keep their production URLs.
func rewriteClient(srv *httptest.Server) *http.Client {
	return &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			req.URL.Scheme = "http"
			req.URL.Host = srv.Listener.Addr().String()
			return http.DefaultTransport.RoundTrip(req)
		}),
	}
}

// requestLog records request paths and queries seen by a test server.
type requestLog struct {
	mu       sync.Mutex
	requests []*http.Request
}

func (l *requestLog) add(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = append(l.requests, r.Clone(context.Background()))
}

func (l *requestLog) all() []*http.Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*http.Request(nil), l.requests...)
}

func TestRemoteOK_FetchJobs(t *testing.T) {
	payload := `[
		{"legal": "API terms of service"},
		{
			"id": 12345,
			"company": "Acme Corp",
			"position": "Senior Java Developer",
			"url": "https://remoteok.com/remote-jobs/12345",
			"tags": ["java", "spring"],
			"description": "&lt;p&gt;Build &lt;b&gt;backend&lt;/b&gt; services&lt;/p&gt;"
		},
		{
			"id": "abc",
			"company": "Globex",
			"position": "Backend Engineer",
			"apply_url": "https://globex.com/apply",
			"tags": "go, kubernetes"
		},
		"not an object"
	]`
	var log requestLog
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(r)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := NewRemoteOKAdapter(rewriteClient(srv), "")
	jobs, err := a.FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	j := jobs[0]
	if j.ID != "12345" {
		t.Errorf("expected ID 12345, got %s", j.ID)
	}
	if j.Source != SourceRemoteOK {
		t.Errorf("expected source remoteok, got %s", j.Source)
	}
	if j.Description != "Build backend services" {
		t.Errorf("expected stripped description, got %q", j.Description)
	}
	if len(j.Tags) != 2 || j.Tags[0] != "java" {
		t.Errorf("unexpected tags %v", j.Tags)
	}

	if jobs[1].URL != "https://globex.com/apply" {
		t.Errorf("expected apply_url fallback, got %s", jobs[1].URL)
	}
	if len(jobs[1].Tags) != 2 || jobs[1].Tags[1] != "kubernetes" {
		t.Errorf("expected comma-separated tags to split, got %v", jobs[1].Tags)
	}

	reqs := log.all()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	if got := reqs[0].Header.Get("User-Agent"); got != DefaultUserAgent {
		t.Errorf("expected default user agent, got %q", got)
	}
	if reqs[0].URL.Path != "/api" {
		t.Errorf("expected path /api, got %s", reqs[0].URL.Path)
	}
}

func TestRemoteOK_OnlyLegalNotice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"legal": "terms"}]`))
	}))
	defer srv.Close()

	jobs, err := NewRemoteOKAdapter(rewriteClient(srv), "").FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("expected no jobs, got %d", len(jobs))
	}
}

func TestRemotive_FetchJobs(t *testing.T) {
	var log requestLog
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(r)
		w.Write([]byte(`{"jobs": [
			{"id": 1, "url": "https://remotive.com/1", "company_name": "Initech", "title": "Spring Boot Engineer", "description": "<p>Java</p>", "tags": ["java"]},
			{"id": 2, "url": "https://remotive.com/2", "company_name": 42, "title": "Broken"}
		]}`))
	}))
	defer srv.Close()

	jobs, err := NewRemotiveAdapter(rewriteClient(srv), "custom-agent").FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected malformed item to be dropped, got %d jobs", len(jobs))
	}
	if jobs[0].Company != "Initech" || jobs[0].Position != "Spring Boot Engineer" || jobs[0].ID != "1" {
		t.Errorf("unexpected job %+v", jobs[0])
	}

	r := log.all()[0]
	q := r.URL.Query()
	if q.Get("category") != "software-dev" || q.Get("search") != "spring boot" || q.Get("limit") != "100" {
		t.Errorf("unexpected query %s", r.URL.RawQuery)
	}
	if r.Header.Get("User-Agent") != "custom-agent" {
		t.Errorf("expected custom user agent, got %q", r.Header.Get("User-Agent"))
	}
}

func TestJobicy_UsesExcerpt(t *testing.T) {
	var log requestLog
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(r)
		w.Write([]byte(`{"jobs": [{"id": 77, "url": "https://jobicy.com/77", "companyName": "Hooli", "jobTitle": "Backend Dev", "jobExcerpt": "Spring Boot &amp; Kafka"}]}`))
	}))
	defer srv.Close()

	jobs, err := NewJobicyAdapter(rewriteClient(srv), "").FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0].Description != "Spring Boot & Kafka" {
		t.Errorf("expected excerpt as description, got %q", jobs[0].Description)
	}
	q := log.all()[0].URL.Query()
	if q.Get("tag") != "spring boot" || q.Get("count") != "100" {
		t.Errorf("unexpected query %v", q)
	}
}

func TestWorkingNomads_URLIsID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"url": "https://workingnomads.com/jobs/x", "company_name": "Umbrella", "title": "Java Engineer", "tags": "java,spring"}]`))
	}))
	defer srv.Close()

	jobs, err := NewWorkingNomadsAdapter(rewriteClient(srv), "").FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0].ID != jobs[0].URL {
		t.Errorf("expected ID to equal URL, got %q vs %q", jobs[0].ID, jobs[0].URL)
	}
	if len(jobs[0].Tags) != 2 {
		t.Errorf("expected 2 tags, got %v", jobs[0].Tags)
	}
}

func TestJobsCollider_FetchJobs(t *testing.T) {
	var log requestLog
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(r)
		w.Write([]byte(`{"jobs": [{"id": "jc-1", "url": "https://jobscollider.com/jc-1", "company_name": "Stark", "title": "Java Dev"}]}`))
	}))
	defer srv.Close()

	jobs, err := NewJobsColliderAdapter(rewriteClient(srv), "").FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != "jc-1" {
		t.Fatalf("unexpected jobs %+v", jobs)
	}
	q := log.all()[0].URL.Query()
	if q.Get("query") != "spring boot" || q.Get("category") != "software_development" {
		t.Errorf("unexpected query %v", q)
	}
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	fetchers := []model.JobFetcher{
		NewRemoteOKAdapter(rewriteClient(srv), ""),
		NewRemotiveAdapter(rewriteClient(srv), ""),
		NewJobicyAdapter(rewriteClient(srv), ""),
		NewWorkingNomadsAdapter(rewriteClient(srv), ""),
		NewJobsColliderAdapter(rewriteClient(srv), ""),
		NewAuthenticJobsAdapter("key", rewriteClient(srv), ""),
	}
	for _, f := range fetchers {
		t.Run(f.Name(), func(t *testing.T) {
			jobs, err := f.FetchJobs(context.Background())
			if err == nil {
				t.Fatal("expected error for 429 response")
			}
			var httpErr *model.HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("expected *model.HTTPError in chain, got %T: %v", err, err)
			}
			if httpErr.StatusCode != http.StatusTooManyRequests {
				t.Errorf("expected status 429, got %d", httpErr.StatusCode)
			}
			if len(jobs) != 0 {
				t.Errorf("expected no jobs, got %d", len(jobs))
			}
		})
	}
}

func TestFetch_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := NewRemotiveAdapter(rewriteClient(srv), "").FetchJobs(context.Background())
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "remotive fetch") {
		t.Errorf("expected source prefix in error, got %v", err)
	}
}

func TestAuthenticJobs_FetchJobs(t *testing.T) {
	var log requestLog
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(r)
		w.Write([]byte(`{"listings": [
			{"id": 9, "title": "Java Engineer", "apply_url": "https://authenticjobs.com/apply/9", "company": {"name": "Wayne"}}
		]}`))
	}))
	defer srv.Close()

	jobs, err := NewAuthenticJobsAdapter("secret", rewriteClient(srv), "").FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0].Company != "Wayne" || jobs[0].URL != "https://authenticjobs.com/apply/9" {
		t.Errorf("unexpected job %+v", jobs[0])
	}
	q := log.all()[0].URL.Query()
	if q.Get("api_key") != "secret" || q.Get("keywords") != "spring boot java" {
		t.Errorf("unexpected query %v", q)
	}
}

func TestKeyedSources_SkipWithoutKeys(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	tests := []struct {
		name    string
		fetcher interface {
			model.JobFetcher
			model.KeyedFetcher
		}
	}{
		{"adzuna missing key", NewAdzunaAdapter("id", "", rewriteClient(srv), "", nil)},
		{"adzuna missing id", NewAdzunaAdapter("", "key", rewriteClient(srv), "", nil)},
		{"themuse", NewTheMuseAdapter("", rewriteClient(srv), "", nil)},
		{"authenticjobs", NewAuthenticJobsAdapter("", rewriteClient(srv), "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.fetcher.Configured() {
				t.Fatal("expected Configured() to be false")
			}
			jobs, err := tt.fetcher.FetchJobs(context.Background())
			if err != nil || len(jobs) != 0 {
				t.Errorf("expected nil, nil; got %v, %v", jobs, err)
			}
		})
	}
	if called {
		t.Error("unconfigured sources must not issue requests")
	}
}

func TestFlexString(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{`"abc"`, "abc", true},
		{`123`, "123", true},
		{`1.5`, "1.5", true},
		{`null`, "", true},
		{`{"x":1}`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f flexString
			err := json.Unmarshal([]byte(tt.in), &f)
			if (err == nil) != tt.ok {
				t.Fatalf("Unmarshal(%s) error = %v, want ok=%v", tt.in, err, tt.ok)
			}
			if tt.ok && string(f) != tt.want {
				t.Errorf("got %q, want %q", f, tt.want)
			}
		})
	}
}

func TestFlexTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`["java","spring"]`, []string{"java", "spring"}},
		{`"java, spring ,, go"`, []string{"java", "spring", "go"}},
		{`42`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got flexTags
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello   world", "hello world"},
		{"html", "<p>Spring <b>Boot</b></p>\n<ul><li>Java</li></ul>", "Spring Boot Java"},
		{"double encoded", "&lt;div&gt;Backend&lt;/div&gt;", "Backend"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractText(tt.in); got != tt.want {
				t.Errorf("extractText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
