package transcriber

import (
	"context"
	"time"
)

// Transcriber converts audio bytes to text using a remote speech-recognition model.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (Result, error)
}

// Result is a successful transcription.
type Result struct {
	Text     string
	Attempts int
	Duration time.Duration
}
