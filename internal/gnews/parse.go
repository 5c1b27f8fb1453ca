package gnews

import (
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Item is one raw result from a news page, before dedup and scoring.
type Item struct {
	Title       string
	Link        string
	Description string
	Source      string
}

// Google rearranges the news-vertical markup periodically; try selector sets
// from newest to oldest until one yields results.
var resultSelectors = []string{
	"div.SoaBEf",
	"div.dbsr",
	"div#search div.g",
}

var titleSelectors = []string{"div.n0jPhd", "div.MBeuO", "div.nDgy9d", "h3", "[role=heading]"}

var descSelectors = []string{"div.GI74Re", "div.s3v9rd", "div.st"}

var sourceSelectors = []string{"div.MgUUmf span", "div.NUnG9d span", "div.CEMjEf span", "cite"}

// ParseResults extracts news items from a results page.
func ParseResults(r io.Reader) ([]Item, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var items []Item
	for _, selector := range resultSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			item := parseResult(s)
			if item.Link == "" || item.Title == "" {
				return
			}
			items = append(items, item)
		})
		if len(items) > 0 {
			break
		}
	}
	return items, nil
}

func parseResult(s *goquery.Selection) Item {
	link := s.Find("a").First().AttrOr("href", "")

	return Item{
		Title:       firstText(s, titleSelectors),
		Link:        cleanResultURL(link),
		Description: firstText(s, descSelectors),
		Source:      firstText(s, sourceSelectors),
	}
}

func firstText(s *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		text := strings.TrimSpace(s.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

// cleanResultURL unwraps Google's /url?q=... redirect links.
func cleanResultURL(link string) string {
	link = strings.TrimSpace(link)
	if strings.HasPrefix(link, "/url?") {
		if u, err := url.Parse(link); err == nil {
			if q := u.Query().Get("q"); q != "" {
				return q
			}
		}
	}
	return link
}
