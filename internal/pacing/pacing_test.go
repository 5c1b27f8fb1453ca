package pacing

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newPacer() *Pacer {
	return New(rand.New(rand.NewSource(7)))
}

func TestPageDelayBounds(t *testing.T) {
	p := newPacer()
	for i := 0; i < 1000; i++ {
		d := p.PageDelay(1)
		assert.GreaterOrEqual(t, d, 3200*time.Millisecond)
		assert.LessOrEqual(t, d, 7200*time.Millisecond)
	}
}

func TestPageDelayCapped(t *testing.T) {
	p := newPacer()
	for i := 0; i < 100; i++ {
		assert.Equal(t, 15*time.Second, p.PageDelay(100))
	}
}

func TestRetryBackoffGrowsExponentially(t *testing.T) {
	p := newPacer()
	ranges := []struct{ lo, hi time.Duration }{
		{24 * time.Second, 36 * time.Second},
		{48 * time.Second, 72 * time.Second},
		{96 * time.Second, 144 * time.Second},
	}
	for attempt, r := range ranges {
		for i := 0; i < 200; i++ {
			d := p.RetryBackoff(attempt)
			assert.GreaterOrEqual(t, d, r.lo, "attempt %d", attempt)
			assert.LessOrEqual(t, d, r.hi, "attempt %d", attempt)
		}
	}
}

func TestRateLimitCooldownFixed(t *testing.T) {
	assert.Equal(t, 10*time.Minute, newPacer().RateLimitCooldown())
}

func TestBatchCooldownBounds(t *testing.T) {
	p := newPacer()
	for i := 0; i < 500; i++ {
		d := p.BatchCooldown()
		assert.GreaterOrEqual(t, d, 240*time.Second)
		assert.LessOrEqual(t, d, 360*time.Second)
	}
}

func TestRotationDue(t *testing.T) {
	p := newPacer()
	// Pages 1 and 2 can never match a modulus from {3..7}.
	for i := 0; i < 500; i++ {
		assert.False(t, p.RotationDue(1))
		assert.False(t, p.RotationDue(2))
	}
	// 420 is divisible by every modulus in {3..7}.
	for i := 0; i < 500; i++ {
		assert.True(t, p.RotationDue(420))
	}
}
