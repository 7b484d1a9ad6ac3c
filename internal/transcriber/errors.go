package transcriber

import (
	"errors"
	"fmt"
)

var (
	ErrMissingToken     = errors.New("missing API token")
	ErrTimeout          = errors.New("transcription timed out")
	ErrRetriesExhausted = errors.New("transcription failed after retries")
	ErrRemote           = errors.New("transcription service returned an error")
)

// StatusError is a non-200 reply from the endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}
