package summarizer

import "context"

// Summarizer condenses a transcript into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
