package processor

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

var contentTypes = map[string]string{
	"mp3":  "audio/mpeg",
	"mp4":  "video/mp4",
	"m4a":  "audio/mp4",
	"wav":  "audio/wav",
	"webm": "audio/webm",
	"flac": "audio/flac",
	"ogg":  "audio/ogg",
}

// extension returns the lower-cased extension of name without the dot.
func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// contentTypeFor maps a file name to the MIME type sent to the endpoint.
func contentTypeFor(name string) string {
	return contentTypes[extension(name)]
}

// validate checks the upload against the configured type and size limits.
func (p *implProcessor) validate(upload Upload) error {
	if len(upload.Data) == 0 {
		return ErrEmptyFile
	}
	ext := extension(upload.Name)
	if !slices.Contains(p.cfg.Upload.Extensions, ext) {
		return fmt.Errorf("%w: %q (accepted: %s)", ErrUnsupportedType, ext, strings.Join(p.cfg.Upload.Extensions, ", "))
	}
	if limit := p.cfg.MaxUploadBytes(); limit > 0 && int64(len(upload.Data)) > limit {
		return fmt.Errorf("%w: %.1f MB exceeds the %d MB limit", ErrFileTooLarge, megabytes(len(upload.Data)), p.cfg.Upload.MaxMB)
	}
	return nil
}

func megabytes(n int) float64 {
	return float64(n) / (1024 * 1024)
}
