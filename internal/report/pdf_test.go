package report

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsharvest/internal/news"
)

func sampleArticles(n int) []news.Article {
	articles := make([]news.Article, 0, n)
	for i := 0; i < n; i++ {
		articles = append(articles, news.Article{
			Title: fmt.Sprintf("Article %d: markets move on earnings, policy and global cues in a fairly long headline", i+1),
			Description: "A description long enough to wrap across several lines of the report " +
				"so that blocks have realistic heights and page breaks actually happen.",
			Source:       "Example Times",
			URL:          fmt.Sprintf("http://example.com/%d", i+1),
			Sentiment:    0.25,
			HasSentiment: true,
		})
	}
	return articles
}

func TestRenderEmptyListProducesNoDocument(t *testing.T) {
	path, err := Render(nil, t.TempDir(), time.Now())

	assert.ErrorIs(t, err, ErrNoArticles)
	assert.Empty(t, path)
}

func TestRenderWritesDatedFile(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

	path, err := Render(sampleArticles(3), dir, now)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "India_Business_News_2026-08-23.pdf"), path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBuildPaginatesWithoutSplittingBlocks(t *testing.T) {
	pdf, err := build(sampleArticles(80))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, pdf.PageCount(), 2)
}

func TestBuildSinglePageForFewArticles(t *testing.T) {
	pdf, err := build(sampleArticles(2))
	require.NoError(t, err)

	assert.Equal(t, 1, pdf.PageCount())
}

func TestArticleHeading(t *testing.T) {
	scored := news.Article{Title: "Foo", Sentiment: 0.42, HasSentiment: true}
	plain := news.Article{Title: "Bar"}

	assert.Equal(t, "3. [+0.42] Foo", articleHeading(3, scored))
	assert.Equal(t, "1. Bar", articleHeading(1, plain))
}
