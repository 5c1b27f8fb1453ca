package news

import (
	"net/url"
	"sort"
	"strings"
)

// Query parameter prefixes treated as tracking noise and stripped before
// comparing URLs.
var trackingPrefixes = []string{"utm_", "gclid", "fbclid"}

// NormalizeURL strips tracking query parameters, sorts the remaining ones and
// drops the fragment, so two links differing only in tracking params or
// parameter order collapse to the same key. Unparseable input is returned
// trimmed as-is.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	type pair struct{ k, v string }
	var kept []pair
	for _, part := range strings.Split(u.RawQuery, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			key = k
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			val = v
		}
		if isTrackingParam(key) {
			continue
		}
		kept = append(kept, pair{key, val})
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].k != kept[j].k {
			return kept[i].k < kept[j].k
		}
		return kept[i].v < kept[j].v
	})

	var q strings.Builder
	for i, p := range kept {
		if i > 0 {
			q.WriteByte('&')
		}
		q.WriteString(url.QueryEscape(p.k))
		q.WriteByte('=')
		q.WriteString(url.QueryEscape(p.v))
	}

	u.RawQuery = q.String()
	u.Fragment = ""
	return u.String()
}

func isTrackingParam(key string) bool {
	key = strings.ToLower(key)
	for _, p := range trackingPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// NormalizeTitle lowercases and trims a title for the secondary dedup key.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Deduplicator tracks the normalized URLs and titles admitted during one run.
// It is touched only by the controller's single goroutine, so it carries no
// locking.
type Deduplicator struct {
	seenURLs   map[string]struct{}
	seenTitles map[string]struct{}
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{
		seenURLs:   make(map[string]struct{}),
		seenTitles: make(map[string]struct{}),
	}
}

// Admit reports whether the article is novel. Both keys are checked before
// either is recorded: a rejected article leaves the sets untouched, and an
// accepted one records both keys exactly once.
func (d *Deduplicator) Admit(a Article) bool {
	urlKey := NormalizeURL(a.URL)
	titleKey := NormalizeTitle(a.Title)

	if _, dup := d.seenURLs[urlKey]; dup {
		return false
	}
	if _, dup := d.seenTitles[titleKey]; dup {
		return false
	}

	d.seenURLs[urlKey] = struct{}{}
	d.seenTitles[titleKey] = struct{}{}
	return true
}

// Len returns how many articles have been admitted.
func (d *Deduplicator) Len() int {
	return len(d.seenURLs)
}
