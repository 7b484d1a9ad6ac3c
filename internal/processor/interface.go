package processor

import (
	"context"

	"github.com/nguyentantai21042004/lecture-notes/internal/report"
)

// Processor runs uploaded recordings through transcription and summarization.
type Processor interface {
	Process(ctx context.Context, upload Upload) (Result, error)
	ProcessFile(ctx context.Context, path string) error
}

// Upload is a recording received from a user or picked up from the inbox.
type Upload struct {
	Name string
	Data []byte
}

// Result is what the presenter shows and what the report is built from.
type Result struct {
	JobID      string       `json:"job_id"`
	FileName   string       `json:"file_name"`
	Transcript string       `json:"transcript"`
	Summary    string       `json:"summary"`
	Stats      report.Stats `json:"stats"`
	Attempts   int          `json:"attempts"`
}
