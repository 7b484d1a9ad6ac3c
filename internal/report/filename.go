package report

import (
	"path/filepath"
	"strings"
)

// FileName builds the download name for a report: summary_<stem>.<ext>, where
// stem is the original name up to its first dot.
func FileName(original, ext string) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	stem, _, _ := strings.Cut(base, ".")
	stem = strings.TrimSpace(stem)
	if stem == "" {
		stem = "lecture"
	}
	return "summary_" + stem + "." + strings.TrimPrefix(ext, ".")
}
