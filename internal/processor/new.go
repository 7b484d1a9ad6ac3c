package processor

import (
	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/summarizer"
	"github.com/nguyentantai21042004/lecture-notes/internal/transcriber"
	"github.com/nguyentantai21042004/lecture-notes/pkg/executor"
)

type implProcessor struct {
	cfg         *config.Config
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	executor    executor.Executor
	logger      logger.Logger
	sem         *semaphore
}

// New creates a new Processor instance
func New(cfg *config.Config, tr transcriber.Transcriber, sum summarizer.Summarizer, exec executor.Executor, log logger.Logger) Processor {
	capacity := cfg.Performance.MaxConcurrent
	if capacity <= 0 {
		capacity = 2
	}
	return &implProcessor{
		cfg:         cfg,
		transcriber: tr,
		summarizer:  sum,
		executor:    exec,
		logger:      log,
		sem:         newSemaphore(capacity),
	}
}
