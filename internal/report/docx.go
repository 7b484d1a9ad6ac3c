package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName    = "Times New Roman"
	fontSize    = 12
	titleSize   = 16
	headingSize = 14
)

// Docx renders the report as a .docx document and returns its bytes.
func Docx(meta Meta, transcript, summary string, stats Stats) ([]byte, error) {
	tmp, err := os.CreateTemp("", "report-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := WriteDocx(path, meta, transcript, summary, stats); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// WriteDocx renders the report as a .docx document at outputPath.
func WriteDocx(outputPath string, meta Meta, transcript, summary string, stats Stats) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	title := meta.Title
	if title == "" {
		title = "Lecture Summary"
	}
	addStyledRun(doc.AddParagraph(""), title, true, titleSize)
	if meta.Source != "" {
		addStyledRun(doc.AddParagraph(""), "Source: "+meta.Source, false, fontSize)
	}

	addStyledRun(doc.AddParagraph(""), "Summary", true, headingSize)
	addParagraphs(doc, summary)

	addStyledRun(doc.AddParagraph(""), "Statistics", true, headingSize)
	for _, line := range []string{
		"• Words: " + FormatNumber(stats.Words),
		"• Characters: " + FormatNumber(stats.Characters),
		"• Sentences: " + FormatNumber(stats.Sentences),
	} {
		addStyledRun(doc.AddParagraph(""), line, false, fontSize)
	}

	addStyledRun(doc.AddParagraph(""), "Full transcript", true, headingSize)
	addParagraphs(doc, transcript)

	if meta.Model != "" {
		addStyledRun(doc.AddParagraph(""), "Generated with: Hugging Face Inference API ("+meta.Model+")", false, fontSize)
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save docx: %w", err)
	}
	return nil
}

// addParagraphs writes one paragraph per non-blank line of text.
func addParagraphs(doc *docx.RootDoc, text string) {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		addStyledRun(doc.AddParagraph(""), trimmed, false, fontSize)
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
