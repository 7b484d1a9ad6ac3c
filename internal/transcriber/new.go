package transcriber

import (
	"context"
	"net/http"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

type implTranscriber struct {
	cfg    config.TranscriptionConfig
	client *http.Client
	logger logger.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// New creates a Transcriber for the inference endpoint described by cfg.
func New(cfg config.TranscriptionConfig, log logger.Logger) Transcriber {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = config.DefaultMaxAttempts
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = config.DefaultRequestTimeout
	}
	return &implTranscriber{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout},
		logger: log,
		sleep:  sleepContext,
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
