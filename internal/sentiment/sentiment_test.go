package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompoundBlankIsNeutral(t *testing.T) {
	a := NewAnalyzer()
	assert.Zero(t, a.Compound(""))
	assert.Zero(t, a.Compound("   \t\n"))
}

func TestCompoundPolarity(t *testing.T) {
	a := NewAnalyzer()

	positive := a.Compound("Markets soar as company reports record profit and great growth")
	negative := a.Compound("Shares crash after terrible losses and fraud scandal")

	assert.Greater(t, positive, 0.0)
	assert.Less(t, negative, 0.0)
}

func TestCompoundBounded(t *testing.T) {
	a := NewAnalyzer()
	for _, text := range []string{
		"amazing wonderful fantastic brilliant excellent superb great best",
		"horrible awful terrible disastrous worst catastrophic dreadful",
		"the quarterly report was published on Tuesday",
	} {
		s := a.Compound(text)
		assert.GreaterOrEqual(t, s, -1.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestCompoundDeterministic(t *testing.T) {
	a := NewAnalyzer()
	text := "Investors cheer strong IPO debut"
	first := a.Compound(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, a.Compound(text))
	}
}
