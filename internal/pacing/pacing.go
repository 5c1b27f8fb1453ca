// Package pacing computes the randomized delays, backoffs and rotation
// schedule that keep request pressure on the upstream source low. All
// randomness flows through one injected source so runs can be replayed in
// tests with a fixed seed.
package pacing

import (
	"math/rand"
	"time"
)

const (
	maxPageDelay      = 15 * time.Second
	rateLimitCooldown = 10 * time.Minute
)

type Pacer struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Pacer {
	return &Pacer{rng: rng}
}

// PageDelay is the pre-fetch pause for a page: uniform(3,7)s plus 0.2s per
// page of depth, capped at 15s.
func (p *Pacer) PageDelay(page int) time.Duration {
	secs := 3 + p.rng.Float64()*4 + float64(page)*0.2
	d := time.Duration(secs * float64(time.Second))
	if d > maxPageDelay {
		d = maxPageDelay
	}
	return d
}

// RetryBackoff is the wait after a transient fetch failure:
// 30s * 2^attempt, jittered by uniform(0.8,1.2). attempt is 0-indexed.
func (p *Pacer) RetryBackoff(attempt int) time.Duration {
	secs := 30 * float64(int(1)<<attempt) * (0.8 + p.rng.Float64()*0.4)
	return time.Duration(secs * float64(time.Second))
}

// RateLimitCooldown is the fixed long wait after a throttling signal,
// independent of the attempt count.
func (p *Pacer) RateLimitCooldown() time.Duration {
	return rateLimitCooldown
}

// BatchCooldown is the pause between batches: uniform(240,360)s.
func (p *Pacer) BatchCooldown() time.Duration {
	secs := 240 + p.rng.Float64()*120
	return time.Duration(secs * float64(time.Second))
}

// RotationDue decides whether the session should be proactively replaced
// before fetching page. The modulus is drawn fresh from {3..7} for every
// page, so the rotation schedule is unpredictable upstream.
func (p *Pacer) RotationDue(page int) bool {
	r := 3 + p.rng.Intn(5)
	return page%r == 0
}
