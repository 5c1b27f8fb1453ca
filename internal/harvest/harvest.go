// Package harvest drives the paginated source through a bounded page budget:
// batches with cooldowns, adaptive per-page delays, retry with backoff,
// rate-limit cooldowns, proactive session rotation and a stagnation stop.
package harvest

import (
	"context"
	"log/slog"
	"time"

	"newsharvest/internal/gnews"
	"newsharvest/internal/metrics"
	"newsharvest/internal/news"
	"newsharvest/internal/pacing"
)

// Session is one replaceable handle over the paginated source.
type Session interface {
	FetchPage(ctx context.Context, page int) ([]gnews.Item, error)
	Close()
}

// Opener constructs a fresh session. Replacing a session is always
// "close old, open new", never in-place mutation.
type Opener func() Session

// Scorer attaches a compound polarity to titles. Nil disables scoring.
type Scorer interface {
	Compound(text string) float64
}

type Config struct {
	MaxPages        int
	BatchSize       int
	StagnationLimit int // consecutive empty pages before the run stops
	MaxRetries      int // fetch attempts per page
}

func DefaultConfig() Config {
	return Config{
		MaxPages:        100,
		BatchSize:       10,
		StagnationLimit: 15,
		MaxRetries:      3,
	}
}

// Harvester is the pagination controller. It owns the current session
// exclusively and runs strictly sequentially; all waits are blocking sleeps
// through the injected sleep func.
type Harvester struct {
	cfg    Config
	open   Opener
	dedup  *news.Deduplicator
	scorer Scorer
	pacer  *pacing.Pacer
	sleep  func(time.Duration)
	log    *slog.Logger

	session Session
}

func New(cfg Config, open Opener, dedup *news.Deduplicator, scorer Scorer, pacer *pacing.Pacer, sleep func(time.Duration), log *slog.Logger) *Harvester {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Harvester{
		cfg:    cfg,
		open:   open,
		dedup:  dedup,
		scorer: scorer,
		pacer:  pacer,
		sleep:  sleep,
		log:    log,
	}
}

// Run walks pages 1..MaxPages and returns every novel article admitted.
// It never returns an error: failed pages degrade to empty pages, and
// cancellation or stagnation end the run with the partial collection.
func (h *Harvester) Run(ctx context.Context) []news.Article {
	h.log.Info("harvest starting", "max_pages", h.cfg.MaxPages, "batch_size", h.cfg.BatchSize)

	h.session = h.open()
	defer func() {
		if h.session != nil {
			h.session.Close()
		}
	}()

	var collected []news.Article
	emptyStreak := 0

	for start := 0; start < h.cfg.MaxPages; start += h.cfg.BatchSize {
		end := start + h.cfg.BatchSize
		if end > h.cfg.MaxPages {
			end = h.cfg.MaxPages
		}
		h.log.Info("batch starting", "first_page", start+1, "last_page", end)

		for page := start + 1; page <= end; page++ {
			if ctx.Err() != nil {
				h.log.Info("harvest interrupted, returning partial results",
					"page", page, "articles", len(collected))
				return collected
			}

			if h.pacer.RotationDue(page) {
				h.rotate("proactive rotation", page)
			}

			delay := h.pacer.PageDelay(page)
			h.sleep(delay)
			h.log.Info("fetching page", "page", page, "delay", delay.Round(100*time.Millisecond))

			fresh := h.fetchPage(ctx, page)

			if len(fresh) > 0 {
				collected = append(collected, fresh...)
				emptyStreak = 0
				h.log.Info("page done", "page", page, "new_articles", len(fresh), "total", len(collected))
			} else {
				emptyStreak++
				metrics.Global.IncrementEmptyPages()
				h.log.Info("page done, no new articles", "page", page, "empty_streak", emptyStreak)
			}

			// Stagnation is checked right after the page, before any
			// batch cooldown can fire.
			if emptyStreak >= h.cfg.StagnationLimit {
				h.log.Info("stopping: stagnation threshold reached",
					"empty_pages", emptyStreak, "articles", len(collected))
				return collected
			}
		}

		if end < h.cfg.MaxPages {
			cooldown := h.pacer.BatchCooldown()
			h.log.Info("batch done, cooling down", "cooldown", cooldown.Round(time.Second))
			h.sleep(cooldown)
		}
	}

	h.log.Info("harvest finished", "articles", len(collected))
	return collected
}

// fetchPage runs the bounded retry loop for one page and filters the raw
// items through the deduplicator. All fetch errors are absorbed here; a page
// that fails every attempt yields zero items.
func (h *Harvester) fetchPage(ctx context.Context, page int) []news.Article {
	for attempt := 0; attempt < h.cfg.MaxRetries; attempt++ {
		items, err := h.session.FetchPage(ctx, page)
		if err == nil {
			metrics.Global.IncrementPagesFetched()
			return h.filter(items)
		}

		switch gnews.Classify(err) {
		case gnews.KindRateLimit:
			cooldown := h.pacer.RateLimitCooldown()
			metrics.Global.IncrementRateLimitHits()
			h.log.Warn("rate limited, cooling down",
				"page", page, "attempt", attempt+1, "cooldown", cooldown, "err", err)
			h.sleep(cooldown)
			h.rotate("rate limit recovery", page)
		default:
			backoff := h.pacer.RetryBackoff(attempt)
			metrics.Global.IncrementRetries()
			h.log.Warn("fetch failed, backing off",
				"page", page, "attempt", attempt+1, "backoff", backoff.Round(time.Second), "err", err)
			h.rotate("failure recovery", page)
			h.sleep(backoff)
		}
	}

	h.log.Error("page failed after all attempts", "page", page, "attempts", h.cfg.MaxRetries)
	return nil
}

func (h *Harvester) filter(items []gnews.Item) []news.Article {
	var fresh []news.Article
	for _, item := range items {
		article := news.Article{
			Title:       item.Title,
			Description: item.Description,
			Source:      item.Source,
			URL:         item.Link,
		}
		if !h.dedup.Admit(article) {
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}
		if h.scorer != nil {
			article.Sentiment = h.scorer.Compound(article.Title)
			article.HasSentiment = true
		}
		fresh = append(fresh, article)
		metrics.Global.IncrementArticlesCollected()
	}
	return fresh
}

func (h *Harvester) rotate(reason string, page int) {
	h.session.Close()
	h.session = h.open()
	metrics.Global.IncrementSessionRotations()
	h.log.Debug("session replaced", "reason", reason, "page", page)
}
