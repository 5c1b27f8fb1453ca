// Package news holds the article model and the run-scoped deduplicator.
package news

// Article is one harvested news item. Once appended to a run's result
// collection it is never mutated.
type Article struct {
	Title       string
	Description string
	Source      string
	URL         string

	// Sentiment is the compound polarity of the title, valid only when
	// HasSentiment is set (the unscored pipeline variant leaves it zero).
	Sentiment    float64
	HasSentiment bool
}
