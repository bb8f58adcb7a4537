package filter

import (
	"strings"

	"github.com/amishk599/autoapply/internal/model"
)

// DefaultKeywords are the relevance keywords for a Spring Boot / Java backend
// search.
var DefaultKeywords = []string{"spring boot", "springboot", "java", "backend"}

// KeywordFilter matches jobs whose position, company, description or tags
// contain any of its keywords. Matching is a case-insensitive substring test.
// An empty keyword list matches everything.
type KeywordFilter struct {
	keywords []string
}

// NewKeywordFilter returns a filter for keywords. Keywords are lowercased once
// here; blank ones are dropped.
func NewKeywordFilter(keywords []string) *KeywordFilter {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return &KeywordFilter{keywords: lowered}
}

// Keywords returns the normalized keyword list.
func (f *KeywordFilter) Keywords() []string {
	return append([]string(nil), f.keywords...)
}

// Match returns true if any keyword occurs in the job's searchable text.
func (f *KeywordFilter) Match(job model.Job) bool {
	if len(f.keywords) == 0 {
		return true
	}
	text := searchText(job)
	for _, kw := range f.keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func searchText(job model.Job) string {
	parts := []string{job.Position, job.Company, job.Description, strings.Join(job.Tags, " ")}
	return strings.ToLower(strings.Join(parts, " "))
}
