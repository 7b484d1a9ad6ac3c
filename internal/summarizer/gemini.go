package summarizer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

const summaryPrompt = `You are summarizing the transcript of a recorded lecture. Write a concise summary in the same language as the transcript.

Requirements:
- Start with one sentence stating the topic of the lecture
- List the main points in the order they appear
- Keep technical terms exactly as spoken
- Plain text only, no markdown headings

Transcript:
---
%s
---`

// keyRing is the rotating cursor over the configured API keys.
type keyRing struct {
	mu      sync.Mutex
	current int
	size    int
}

func (k *keyRing) get() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.current
}

func (k *keyRing) rotate() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.current = (k.current + 1) % k.size
}

// Summarize asks Gemini for a summary. Any failure other than cancellation
// falls back to the extractive summary.
func (s *geminiSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	summary, err := s.callGemini(ctx, text)
	if err == nil {
		return strings.TrimSpace(summary), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	s.logger.Warn(ctx, "Gemini summary failed, using extractive summary: %v", err)
	return Extract(text), nil
}

// callGemini sends the transcript to Gemini and returns the summary text.
// Rotates API keys on 429 / quota errors.
func (s *geminiSummarizer) callGemini(ctx context.Context, transcript string) (string, error) {
	prompt := fmt.Sprintf(summaryPrompt, transcript)

	var lastErr error
	for range s.apiKeys {
		idx := s.keys.get()

		cc := &genai.ClientConfig{
			APIKey:  s.apiKeys[idx],
			Backend: genai.BackendGeminiAPI,
		}
		if s.baseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: s.baseURL}
		}
		client, err := genai.NewClient(ctx, cc)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.keys.rotate()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				s.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
				s.keys.rotate()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var b strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part != nil && part.Text != "" {
					b.WriteString(part.Text)
				}
			}
			if b.Len() > 0 {
				return b.String(), nil
			}
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}
