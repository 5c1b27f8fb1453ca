// Package mail delivers the rendered report as an email attachment. Every
// transport and authentication fault is absorbed into the boolean outcome
// with a logged cause; delivery never crashes the run.
package mail

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"gopkg.in/gomail.v2"

	"newsharvest/internal/config"
	"newsharvest/internal/metrics"
	"newsharvest/internal/retry"
)

// Send mails the report at path per cfg and reports success. A missing
// password or recipient is a configuration error: logged, delivery fails,
// nothing panics.
func Send(ctx context.Context, cfg config.Mail, path string, log *slog.Logger) bool {
	if cfg.Password == "" {
		log.Error("mail not sent: MAIL_PASSWORD is not set")
		metrics.Global.SetError("missing mail credential")
		return false
	}
	if cfg.From == "" || cfg.To == "" {
		log.Error("mail not sent: MAIL_FROM and MAIL_TO must be set")
		metrics.Global.SetError("missing mail addresses")
		return false
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", cfg.To)
	m.SetHeader("Subject", cfg.Subject)
	m.SetBody("text/plain", "Please find attached the latest report.")
	m.Attach(path)

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.From, cfg.Password)

	err := retry.WithRetry(ctx, retry.Config{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
		Backoff:     true,
	}, func() error {
		return dialer.DialAndSend(m)
	})
	if err != nil {
		log.Error("mail delivery failed", "host", cfg.Host, "to", cfg.To, "err", err)
		metrics.Global.SetError("mail delivery failed: " + err.Error())
		return false
	}

	metrics.Global.IncrementReportsSent()
	log.Info("report mailed", "to", cfg.To, "attachment", filepath.Base(path))
	return true
}
