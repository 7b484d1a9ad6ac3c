package summarizer

import (
	"context"
	"strings"
	"unicode/utf8"
)

const (
	// ElisionMarker separates the leading and trailing sentences of a long summary.
	ElisionMarker = "\n[... middle section omitted ...]\n"

	minSentenceRunes = 10
	shortTextLimit   = 5
	leadSentences    = 4
	tailSentences    = 2
	elisionThreshold = 10
)

var terminatorReplacer = strings.NewReplacer("!", ".", "?", ".", "؟", ".")

type extractiveSummarizer struct{}

func (extractiveSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	return Extract(text), nil
}

// Fragments splits text on sentence terminators and returns the trimmed,
// non-empty pieces.
func Fragments(text string) []string {
	parts := strings.Split(terminatorReplacer.Replace(text), ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Sentences returns the fragments longer than the minimum length, each
// terminated with a period.
func Sentences(text string) []string {
	var out []string
	for _, f := range Fragments(text) {
		if utf8.RuneCountInString(f) > minSentenceRunes {
			out = append(out, f+".")
		}
	}
	return out
}

// Extract keeps the first four and last two sentences of text. Text with five
// or fewer sentences is returned unchanged; the elision marker is inserted
// only when more than ten sentences were found.
func Extract(text string) string {
	sentences := Sentences(text)
	if len(sentences) <= shortTextLimit {
		return text
	}

	parts := make([]string, 0, leadSentences+tailSentences+1)
	parts = append(parts, sentences[:leadSentences]...)
	if len(sentences) > elisionThreshold {
		parts = append(parts, ElisionMarker)
	}
	parts = append(parts, sentences[len(sentences)-tailSentences:]...)

	return strings.Join(parts, " ")
}
