// Package sentiment scores short texts with a VADER lexicon model.
package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

// Analyzer wraps a govader analyzer. Scoring is pure: the same text always
// yields the same score.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the compound polarity of text, bounded in [-1, 1].
// Blank text is neutral.
func (a *Analyzer) Compound(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	score := a.vader.PolarityScores(text).Compound
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	return score
}
