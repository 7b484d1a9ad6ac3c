package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/metrics"
	"github.com/nguyentantai21042004/lecture-notes/internal/report"
	"github.com/nguyentantai21042004/lecture-notes/internal/transcriber"
)

// Process validates the upload, transcribes it and builds the summary and statistics.
func (p *implProcessor) Process(ctx context.Context, upload Upload) (Result, error) {
	startTime := time.Now()
	jobID := uuid.NewString()
	ctx = logger.WithField(ctx, "job_id", jobID)

	if p.cfg.Transcription.Token == "" {
		metrics.RecordJob("rejected")
		return Result{}, transcriber.ErrMissingToken
	}
	if err := p.validate(upload); err != nil {
		p.logger.Warn(ctx, "Rejected upload %s: %v", upload.Name, err)
		metrics.RecordJob("rejected")
		return Result{}, err
	}
	metrics.ObserveUpload(len(upload.Data))

	p.logger.Info(ctx, "Processing %s (%.1f MB)", upload.Name, megabytes(len(upload.Data)))

	// Step 1: Transcribe
	if err := p.sem.acquire(ctx); err != nil {
		metrics.RecordJob("failed")
		return Result{}, err
	}
	tr, err := p.transcriber.Transcribe(ctx, upload.Data, contentTypeFor(upload.Name))
	p.sem.release()
	if err != nil {
		p.logger.Error(ctx, "Transcription failed for %s: %v", upload.Name, err)
		metrics.RecordJob("failed")
		return Result{}, fmt.Errorf("transcribe: %w", err)
	}

	transcript := strings.TrimSpace(tr.Text)
	if transcript == "" {
		p.logger.Warn(ctx, "Empty transcript for %s", upload.Name)
		metrics.RecordJob("empty")
		return Result{}, ErrEmptyTranscript
	}

	// Step 2: Summarize
	summary, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		metrics.RecordJob("failed")
		return Result{}, fmt.Errorf("summarize: %w", err)
	}

	// Step 3: Statistics
	stats := report.Count(transcript)

	p.logger.Info(ctx, "Processed %s in %s: %d words, %d sentences, %d attempt(s)",
		upload.Name, time.Since(startTime).Truncate(time.Millisecond), stats.Words, stats.Sentences, tr.Attempts)
	metrics.RecordJob("success")

	return Result{
		JobID:      jobID,
		FileName:   upload.Name,
		Transcript: transcript,
		Summary:    summary,
		Stats:      stats,
		Attempts:   tr.Attempts,
	}, nil
}
