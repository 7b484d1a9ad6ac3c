package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/report"
)

// ProcessFile runs a recording from the inbox through the pipeline and writes
// its reports to the output directory.
func (p *implProcessor) ProcessFile(ctx context.Context, path string) error {
	startTime := time.Now()
	originalName := filepath.Base(path)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting: %s", path)
	p.logger.Info(ctx, "========================================")

	// Step 1: Extract audio from video containers
	audioPath := path
	if p.cfg.FFmpeg.Enabled && isVideo(path) {
		extracted, err := p.extractAudio(ctx, path)
		if err != nil {
			return fmt.Errorf("extract audio: %w", err)
		}
		defer p.cleanupTempFile(ctx, extracted)
		audioPath = extracted
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return fmt.Errorf("read recording: %w", err)
	}

	// Step 2: Transcribe and summarize
	res, err := p.Process(ctx, Upload{Name: filepath.Base(audioPath), Data: data})
	if err != nil {
		return err
	}
	res.FileName = originalName

	// Step 3: Write reports
	written, err := p.writeReports(res)
	if err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	// Step 4: Move original recording to archived folder
	if err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Completed: %s", originalName)
	p.logger.Info(ctx, "Reports: %s", strings.Join(written, ", "))
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime).Truncate(time.Millisecond))
	p.logger.Info(ctx, "========================================")

	return nil
}

// writeReports writes the text report, and the docx report when enabled,
// returning the paths written.
func (p *implProcessor) writeReports(res Result) ([]string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	meta := report.Meta{
		Title:  p.cfg.Report.Title,
		Source: res.FileName,
		Model:  p.cfg.Transcription.Model,
	}

	txtPath := filepath.Join(p.cfg.Paths.Output, report.FileName(res.FileName, "txt"))
	text := report.Text(meta, res.Transcript, res.Summary, res.Stats)
	if err := os.WriteFile(txtPath, []byte(text), 0644); err != nil {
		return nil, fmt.Errorf("write text report: %w", err)
	}
	written := []string{txtPath}

	if p.cfg.Report.Docx {
		docxPath := filepath.Join(p.cfg.Paths.Output, report.FileName(res.FileName, "docx"))
		if err := report.WriteDocx(docxPath, meta, res.Transcript, res.Summary, res.Stats); err != nil {
			return written, err
		}
		written = append(written, docxPath)
	}

	return written, nil
}
