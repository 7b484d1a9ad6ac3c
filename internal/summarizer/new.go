package summarizer

import (
	"fmt"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

type geminiSummarizer struct {
	apiKeys []string
	baseURL string
	model   string
	logger  logger.Logger
	keys    keyRing
}

// New returns the Summarizer selected by cfg.Summary.Mode.
func New(cfg *config.Config, log logger.Logger) (Summarizer, error) {
	switch cfg.Summary.Mode {
	case "", config.SummaryExtractive:
		return extractiveSummarizer{}, nil
	case config.SummaryGemini:
		return NewGemini(cfg.Gemini.APIKeys, cfg.Gemini.Model, cfg.Gemini.BaseURL, log)
	default:
		return nil, fmt.Errorf("unknown summary mode %q", cfg.Summary.Mode)
	}
}

// NewGemini creates a Summarizer that rotates through the supplied Gemini API
// keys and falls back to the extractive summary when every call fails.
func NewGemini(apiKeys []string, model, baseURL string, log logger.Logger) (Summarizer, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("gemini summarizer requires at least one API key")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &geminiSummarizer{
		apiKeys: apiKeys,
		baseURL: baseURL,
		model:   model,
		logger:  log,
		keys:    keyRing{size: len(apiKeys)},
	}, nil
}
