package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
	"github.com/nguyentantai21042004/lecture-notes/internal/transcriber"
)

var (
	errNoFile       = errors.New("no audio file was uploaded")
	errNoTranscript = errors.New("transcript is required")
	errBadFormat    = errors.New("format must be txt or docx")
)

// describe maps a pipeline error to a status code and a message fit for the user.
func (s *implServer) describe(err error) (int, string) {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, transcriber.ErrMissingToken):
		return http.StatusServiceUnavailable,
			"The Hugging Face API token is not configured. Set HF_TOKEN and restart the service."
	case errors.As(err, &maxBytes), errors.Is(err, processor.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge,
			fmt.Sprintf("The file is too large. The maximum size is %d MB.", s.cfg.Upload.MaxMB)
	case errors.Is(err, processor.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType,
			fmt.Sprintf("Unsupported file type. Accepted formats: %s.", strings.Join(s.cfg.Upload.Extensions, ", "))
	case errors.Is(err, processor.ErrEmptyFile), errors.Is(err, errNoFile):
		return http.StatusBadRequest, "Please choose an audio file to upload."
	case errors.Is(err, errNoTranscript), errors.Is(err, errBadFormat):
		return http.StatusBadRequest, capitalize(err.Error()) + "."
	case errors.Is(err, processor.ErrEmptyTranscript):
		return http.StatusUnprocessableEntity,
			"No speech was recognized. Check that the recording contains audible speech."
	case errors.Is(err, transcriber.ErrTimeout):
		return http.StatusGatewayTimeout,
			"The transcription service timed out. Try a shorter recording or retry later."
	case errors.Is(err, transcriber.ErrRemote):
		return http.StatusBadGateway, fmt.Sprintf("The transcription service reported an error: %v", err)
	case errors.Is(err, transcriber.ErrRetriesExhausted):
		return http.StatusBadGateway,
			"The transcription service could not process the recording after several attempts. Please try again later."
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "The request was cancelled."
	default:
		return http.StatusInternalServerError, "An unexpected error occurred while processing the recording."
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
