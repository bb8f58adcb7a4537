package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const programmingFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>We Work Remotely: Programming</title>
    <item>
      <title>Acme Corp: Senior Java Engineer</title>
      <link>https://weworkremotely.com/remote-jobs/acme-java</link>
      <description>&lt;p&gt;Spring Boot services&lt;/p&gt;</description>
    </item>
    <item>
      <title>Fullstack Developer</title>
      <link>https://weworkremotely.com/remote-jobs/no-company</link>
    </item>
  </channel>
</rss>`

func TestSplitFeedTitle(t *testing.T) {
	tests := []struct {
		title       string
		wantCompany string
		wantPos     string
	}{
		{"Acme Corp: Senior Java Engineer", "Acme Corp", "Senior Java Engineer"},
		{"Globex: Backend: Platform", "Globex", "Backend: Platform"},
		{"  Just a Title  ", "", "Just a Title"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			c, p := splitFeedTitle(tt.title)
			if c != tt.wantCompany || p != tt.wantPos {
				t.Errorf("splitFeedTitle(%q) = (%q, %q), want (%q, %q)", tt.title, c, p, tt.wantCompany, tt.wantPos)
			}
		})
	}
}

func TestWWR_FetchJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "back-end") {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(programmingFeed))
	}))
	defer srv.Close()

	jobs, err := NewWWRAdapter(rewriteClient(srv), "").FetchJobs(context.Background())
	if err == nil {
		t.Fatal("expected error for the failing feed")
	}
	if !strings.Contains(err.Error(), "remote-back-end-programming-jobs.rss") {
		t.Errorf("expected failing feed URL in error, got %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected jobs from the healthy feed to survive, got %d", len(jobs))
	}

	j := jobs[0]
	if j.Company != "Acme Corp" || j.Position != "Senior Java Engineer" {
		t.Errorf("unexpected split: company=%q position=%q", j.Company, j.Position)
	}
	if j.ID != j.URL || j.URL != "https://weworkremotely.com/remote-jobs/acme-java" {
		t.Errorf("expected link as ID and URL, got ID=%q URL=%q", j.ID, j.URL)
	}
	if j.Source != SourceWWR {
		t.Errorf("expected source wwr, got %s", j.Source)
	}
	if jobs[1].Company != "" || jobs[1].Position != "Fullstack Developer" {
		t.Errorf("expected title without colon to be position only, got %+v", jobs[1])
	}
}

func TestRealWorkFromAnywhere_FetchJobs(t *testing.T) {
	var log requestLog
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(r)
		w.Write([]byte(programmingFeed))
	}))
	defer srv.Close()

	jobs, err := NewRealWorkFromAnywhereAdapter(rewriteClient(srv), "").FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(log.all()); got != 3 {
		t.Errorf("expected 3 feed requests, got %d", got)
	}
	if len(jobs) != 6 {
		t.Fatalf("expected 2 items from each of 3 feeds, got %d", len(jobs))
	}
	if jobs[0].Company != "" {
		t.Errorf("expected empty company, got %q", jobs[0].Company)
	}
	if jobs[0].Position != "Acme Corp: Senior Java Engineer" {
		t.Errorf("expected full title as position, got %q", jobs[0].Position)
	}
	if jobs[0].Description != "Spring Boot services" {
		t.Errorf("expected summary as description, got %q", jobs[0].Description)
	}
}

func TestFeed_Unparseable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not a feed"))
	}))
	defer srv.Close()

	jobs, err := NewWWRAdapter(rewriteClient(srv), "").FetchJobs(context.Background())
	if err == nil {
		t.Fatal("expected parse error")
	}
	if len(jobs) != 0 {
		t.Errorf("expected no jobs, got %d", len(jobs))
	}
}
