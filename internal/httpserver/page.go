package httpserver

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
	"github.com/nguyentantai21042004/lecture-notes/internal/report"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"number": report.FormatNumber,
}).ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	Title        string
	Model        string
	Accept       string
	MaxMB        int
	TokenMissing bool
	Error        string
	UploadSize   string
	Result       *processor.Result
}

func (s *implServer) pageData() pageData {
	return pageData{
		Title:        s.cfg.Report.Title,
		Model:        s.cfg.Transcription.Model,
		Accept:       s.accept,
		MaxMB:        s.cfg.Upload.MaxMB,
		TokenMissing: s.cfg.Transcription.Token == "",
	}
}

func (s *implServer) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.logger.Error(r.Context(), "Failed to render page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
