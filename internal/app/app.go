// Package app wires the pipeline: probe, harvest passes, render, deliver.
package app

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"newsharvest/internal/config"
	"newsharvest/internal/gnews"
	"newsharvest/internal/harvest"
	"newsharvest/internal/mail"
	"newsharvest/internal/metrics"
	"newsharvest/internal/news"
	"newsharvest/internal/pacing"
	"newsharvest/internal/report"
	"newsharvest/internal/sentiment"
)

// Run executes the full pipeline and returns the process exit code:
// 0 when articles were collected, the report rendered and the mail accepted,
// 1 otherwise.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger) int {
	search := gnews.Search{
		Query:    cfg.Search.Query,
		Language: cfg.Search.Language,
		Region:   cfg.Search.Region,
		Period:   cfg.Search.Period,
	}

	// Health probe on the query; the run proceeds regardless.
	if count, err := gnews.ProbeFeed(ctx, search); err != nil {
		log.Warn("feed probe failed", "err", err)
	} else {
		log.Info("feed probe", "items", count)
	}

	opener := func() harvest.Session {
		return gnews.NewSession(search, cfg.RequestTimeout)
	}

	var scorer harvest.Scorer
	if cfg.IncludeSentiment {
		scorer = sentiment.NewAnalyzer()
	}

	harvester := harvest.New(
		harvest.Config{
			MaxPages:        cfg.Search.MaxPages,
			BatchSize:       cfg.Search.BatchSize,
			StagnationLimit: cfg.Search.StagnationLimit,
			MaxRetries:      3,
		},
		opener,
		news.NewDeduplicator(),
		scorer,
		pacing.New(rand.New(rand.NewSource(time.Now().UnixNano()))),
		nil, // real sleeps
		log,
	)

	// The deduplicator is shared across passes, so later passes only add
	// articles that were not seen earlier the same day.
	var collected []news.Article
	reportPath := ""
	for pass := 1; pass <= cfg.Passes; pass++ {
		log.Info("pass starting", "pass", pass, "of", cfg.Passes)
		collected = append(collected, harvester.Run(ctx)...)
		metrics.Global.SetLastRun()

		if path, err := report.Render(collected, cfg.OutputDir, time.Now()); err != nil {
			log.Error("render failed", "pass", pass, "err", err)
		} else {
			reportPath = path
			log.Info("report rendered", "pass", pass, "path", path, "articles", len(collected))
		}

		if pass < cfg.Passes {
			log.Info("waiting before next pass", "interval", cfg.PassInterval)
			select {
			case <-ctx.Done():
				log.Info("interrupted between passes, delivering what was collected")
				pass = cfg.Passes // no more passes
			case <-time.After(cfg.PassInterval):
			}
		}
	}

	if len(collected) == 0 {
		log.Error("no articles collected, nothing to deliver")
		metrics.Global.SetError("no articles collected")
		return 1
	}
	if reportPath == "" {
		log.Error("no report produced")
		return 1
	}

	if !mail.Send(ctx, cfg.Mail, reportPath, log) {
		return 1
	}
	return 0
}
