package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// fetchFeeds downloads and parses each feed URL in order. A failing feed is
// reported in the joined error while items from the other feeds are kept.
func (s httpSource) fetchFeeds(ctx context.Context, urls []string) ([]*gofeed.Item, error) {
	parser := gofeed.NewParser()
	var items []*gofeed.Item
	var errs []error
	for _, u := range urls {
		body, err := s.get(ctx, u)
		if err != nil {
			errs = append(errs, fmt.Errorf("feed %s: %w", u, err))
			continue
		}
		feed, err := parser.Parse(bytes.NewReader(body))
		if err != nil {
			errs = append(errs, fmt.Errorf("feed %s: %w", u, err))
			continue
		}
		items = append(items, feed.Items...)
	}
	return items, errors.Join(errs...)
}

// splitFeedTitle splits "Company: Position" on the first colon. Titles
// without a colon are all position.
func splitFeedTitle(title string) (company, position string) {
	title = strings.TrimSpace(title)
	company, position, found := strings.Cut(title, ":")
	if !found {
		return "", title
	}
	return strings.TrimSpace(company), strings.TrimSpace(position)
}
