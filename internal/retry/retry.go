// Package retry is a small helper for bounded retries with optional
// exponential backoff. The harvest controller carries its own retry policy
// (its waits are page- and kind-specific); this helper serves the simpler
// edges: mail delivery and the feed probe.
package retry

import (
	"context"
	"fmt"
	"time"
)

type Config struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     bool // double the delay after each failed attempt
	MaxDelay    time.Duration
}

func WithRetry(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error

	delay := cfg.Delay
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := fn(); err != nil {
			lastErr = err

			if attempt == cfg.MaxAttempts {
				return fmt.Errorf("failed after %d attempts: %w", cfg.MaxAttempts, err)
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}

			if cfg.Backoff {
				delay *= 2
				if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
					delay = cfg.MaxDelay
				}
			}
			continue
		}
		return nil
	}

	return lastErr
}
