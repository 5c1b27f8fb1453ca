package gnews

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mmcdole/gofeed"
)

// ProbeFeed fetches the Google News RSS feed for the same query and returns
// how many items it carries. Used as a run-start health check on the query;
// the result is logged, never a control dependency.
func ProbeFeed(ctx context.Context, search Search) (int, error) {
	feedURL := fmt.Sprintf(
		"https://news.google.com/rss/search?q=%s&hl=%s-%s&gl=%s&ceid=%s:%s",
		url.QueryEscape(search.Query),
		search.Language, search.Region,
		search.Region,
		search.Region, search.Language,
	)

	parser := gofeed.NewParser()
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return 0, fmt.Errorf("probe feed: %w", err)
	}
	return len(feed.Items), nil
}
