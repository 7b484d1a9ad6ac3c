package report

import (
	"fmt"
	"strings"
)

const separatorWidth = 70

// Meta describes where a report came from.
type Meta struct {
	Title  string
	Source string
	Model  string
}

// Text renders the downloadable plain-text report.
func Text(meta Meta, transcript, summary string, stats Stats) string {
	sep := strings.Repeat("=", separatorWidth)
	title := meta.Title
	if title == "" {
		title = "Lecture Summary"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", title)
	if meta.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", meta.Source)
	}
	fmt.Fprintf(&b, "%s\n\n", sep)

	fmt.Fprintf(&b, "Full transcript:\n%s\n\n%s\n\n", transcript, sep)
	fmt.Fprintf(&b, "Summary:\n%s\n\n%s\n\n", summary, sep)

	b.WriteString("Statistics:\n")
	fmt.Fprintf(&b, "- Words: %s\n", FormatNumber(stats.Words))
	fmt.Fprintf(&b, "- Characters: %s\n", FormatNumber(stats.Characters))
	fmt.Fprintf(&b, "- Sentences: %s\n\n", FormatNumber(stats.Sentences))

	fmt.Fprintf(&b, "%s\n", sep)
	if meta.Model != "" {
		fmt.Fprintf(&b, "Generated with: Hugging Face Inference API (%s)\n", meta.Model)
	} else {
		b.WriteString("Generated with: Hugging Face Inference API\n")
	}
	return b.String()
}
