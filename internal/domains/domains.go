// Package domains guesses company domains from display names.
package domains

import (
	"regexp"
	"strings"
)

// maxSlugLength bounds pathological company names.
const maxSlugLength = 50

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// candidateTLDs are tried in this order.
var candidateTLDs = []string{".com", ".io", ".co"}

// Slugify lowercases name, keeps only ASCII letters, digits and whitespace,
// then removes the whitespace and truncates to 50 characters.
func Slugify(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "")
	if len(s) > maxSlugLength {
		s = s[:maxSlugLength]
	}
	return s
}

// CandidateDomains returns {slug}.com, {slug}.io and {slug}.co, or nil when
// the name has no usable characters.
func CandidateDomains(companyName string) []string {
	slug := Slugify(companyName)
	if slug == "" {
		return nil
	}
	out := make([]string, 0, len(candidateTLDs))
	for _, tld := range candidateTLDs {
		out = append(out, slug+tld)
	}
	return out
}
