// Package gnews wraps the Google News search vertical as a paginated,
// replaceable fetch session.
package gnews

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const resultsPerPage = 10

// searchBaseURL is a var so tests can point a session at a local server.
var searchBaseURL = "https://www.google.com/search"

// Search binds a session to one query, language/region and recency window.
type Search struct {
	Query    string
	Language string // e.g. "en"
	Region   string // e.g. "IN"
	Period   string // e.g. "1d"
}

// Browser User-Agents; one is picked per session so successive sessions do
// not share a fingerprint.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
}

// Session is an opaque handle over the paginated source. It is owned by a
// single caller; replacing it means closing the old one and opening a new
// one, never mutating a shared handle.
type Session struct {
	client    *http.Client
	search    Search
	userAgent string
}

// NewSession opens a session with a fresh cookie jar and User-Agent.
func NewSession(search Search, timeout time.Duration) *Session {
	jar, _ := cookiejar.New(nil)
	return &Session{
		client: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		search:    search,
		userAgent: userAgents[rand.Intn(len(userAgents))],
	}
}

// Close releases the session's idle connections.
func (s *Session) Close() {
	s.client.CloseIdleConnections()
}

// FetchPage requests one page of results (1-based). Failures are returned as
// *FetchError: KindRateLimit when the response looks like throttling,
// KindTransient for everything else.
func (s *Session) FetchPage(ctx context.Context, page int) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.pageURL(page), http.NoBody)
	if err != nil {
		return nil, &FetchError{Kind: KindTransient, Page: page, Err: err}
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", s.search.Language)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindTransient, Page: page, Err: err}
	}
	defer resp.Body.Close()

	// Google's throttling interstitial redirects to /sorry/.
	if resp.StatusCode == http.StatusTooManyRequests ||
		strings.Contains(resp.Request.URL.Path, "/sorry") {
		return nil, &FetchError{
			Kind: KindRateLimit,
			Page: page,
			Err:  fmt.Errorf("status %d at %s", resp.StatusCode, resp.Request.URL.Path),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			Kind: KindTransient,
			Page: page,
			Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, &FetchError{Kind: KindTransient, Page: page, Err: err}
	}

	html := string(body)
	if strings.Contains(html, "unusual traffic from your computer network") {
		return nil, &FetchError{
			Kind: KindRateLimit,
			Page: page,
			Err:  fmt.Errorf("captcha interstitial"),
		}
	}

	items, err := ParseResults(strings.NewReader(html))
	if err != nil {
		return nil, &FetchError{Kind: KindTransient, Page: page, Err: err}
	}
	return items, nil
}

func (s *Session) pageURL(page int) string {
	q := url.Values{}
	q.Set("q", s.search.Query)
	q.Set("tbm", "nws")
	q.Set("hl", s.search.Language)
	q.Set("gl", s.search.Region)
	q.Set("lr", "lang_"+s.search.Language)
	q.Set("tbs", periodParam(s.search.Period))
	q.Set("num", strconv.Itoa(resultsPerPage))
	q.Set("start", strconv.Itoa((page-1)*resultsPerPage))
	return searchBaseURL + "?" + q.Encode()
}

// periodParam maps a recency window like "1d" or "12h" to Google's tbs value.
func periodParam(period string) string {
	period = strings.TrimSpace(strings.ToLower(period))
	if period == "" {
		return "qdr:d"
	}
	unit := period[len(period)-1:]
	count := strings.TrimSuffix(period, unit)
	if count == "" || count == "1" {
		return "qdr:" + unit
	}
	return "qdr:" + unit + count
}
