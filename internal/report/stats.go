package report

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats holds simple counts over a transcript.
type Stats struct {
	Words      int `json:"words"`
	Characters int `json:"characters"`
	Sentences  int `json:"sentences"`
}

// Count returns whitespace-separated words, runes and non-blank pieces of
// text split on periods.
func Count(text string) Stats {
	return Stats{
		Words:      len(strings.Fields(text)),
		Characters: utf8.RuneCountInString(text),
		Sentences:  countSentences(text),
	}
}

// countSentences only splits on '.'; '!' and '?' do not end a counted sentence.
func countSentences(text string) int {
	n := 0
	for _, piece := range strings.Split(text, ".") {
		if strings.TrimSpace(piece) != "" {
			n++
		}
	}
	return n
}

var printer = message.NewPrinter(language.English)

// FormatNumber renders n with thousands separators.
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}
