package filter

import (
	"testing"

	"github.com/amishk599/autoapply/internal/model"
)

func TestKeywordFilter_Match(t *testing.T) {
	tests := []struct {
		name      string
		keywords  []string
		job       model.Job
		wantMatch bool
	}{
		{
			name:      "keyword in position",
			keywords:  DefaultKeywords,
			job:       model.Job{Position: "Senior Java Engineer"},
			wantMatch: true,
		},
		{
			name:      "case insensitive",
			keywords:  DefaultKeywords,
			job:       model.Job{Position: "SPRING BOOT Developer"},
			wantMatch: true,
		},
		{
			name:      "keyword only in description",
			keywords:  DefaultKeywords,
			job:       model.Job{Position: "Software Engineer", Description: "You will build backend services"},
			wantMatch: true,
		},
		{
			name:      "keyword only in tags",
			keywords:  DefaultKeywords,
			job:       model.Job{Position: "Engineer", Tags: []string{"Go", "SpringBoot"}},
			wantMatch: true,
		},
		{
			name:      "keyword in company name",
			keywords:  DefaultKeywords,
			job:       model.Job{Company: "Java Shop Ltd", Position: "Designer"},
			wantMatch: true,
		},
		{
			name:      "no keyword anywhere",
			keywords:  DefaultKeywords,
			job:       model.Job{Company: "Acme", Position: "Frontend Developer", Description: "React and CSS", Tags: []string{"react"}},
			wantMatch: false,
		},
		{
			name:      "substring match inside a word",
			keywords:  DefaultKeywords,
			job:       model.Job{Position: "JavaScript Developer"},
			wantMatch: true,
		},
		{
			name:      "empty keywords match everything",
			keywords:  nil,
			job:       model.Job{Position: "Anything"},
			wantMatch: true,
		},
		{
			name:      "blank keywords are ignored",
			keywords:  []string{"  ", ""},
			job:       model.Job{Position: "Anything"},
			wantMatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewKeywordFilter(tt.keywords)
			if got := f.Match(tt.job); got != tt.wantMatch {
				t.Errorf("Match() = %v, want %v", got, tt.wantMatch)
			}
		})
	}
}

func TestNewKeywordFilter_Normalizes(t *testing.T) {
	f := NewKeywordFilter([]string{" Java ", "BACKEND"})
	got := f.Keywords()
	if len(got) != 2 || got[0] != "java" || got[1] != "backend" {
		t.Errorf("Keywords() = %v", got)
	}
}
