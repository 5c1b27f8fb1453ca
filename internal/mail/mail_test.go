package mail

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"newsharvest/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSendFailsWithoutCredential(t *testing.T) {
	cfg := config.Mail{
		Host: "smtp.example.com",
		Port: 587,
		From: "from@example.com",
		To:   "to@example.com",
	}

	ok := Send(context.Background(), cfg, "report.pdf", discardLogger())
	assert.False(t, ok)
}

func TestSendFailsWithoutAddresses(t *testing.T) {
	cfg := config.Mail{
		Host:     "smtp.example.com",
		Port:     587,
		Password: "secret",
	}

	ok := Send(context.Background(), cfg, "report.pdf", discardLogger())
	assert.False(t, ok)
}
