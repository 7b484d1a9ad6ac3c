package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
	"github.com/nguyentantai21042004/lecture-notes/internal/report"
	"github.com/nguyentantai21042004/lecture-notes/internal/summarizer"
)

const (
	// maxFormMemory is how much of a multipart body is held in memory
	// before spilling to temporary files.
	maxFormMemory = 32 << 20
	// maxReportBody bounds the report download form.
	maxReportBody = 10 << 20

	contentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

func (s *implServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, s.pageData())
}

func (s *implServer) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	data := s.pageData()

	upload, err := s.readUpload(w, r)
	if err == nil {
		data.UploadSize = fmt.Sprintf("%.2f MB", float64(len(upload.Data))/(1024*1024))
		var res processor.Result
		res, err = s.processor.Process(r.Context(), upload)
		if err == nil {
			data.Result = &res
		}
	}
	if err != nil {
		status, msg := s.describe(err)
		data.Error = msg
		s.render(w, r, status, data)
		return
	}

	s.render(w, r, http.StatusOK, data)
}

func (s *implServer) handleAPITranscribe(w http.ResponseWriter, r *http.Request) {
	res, err := s.transcribeUpload(w, r)
	if err != nil {
		status, msg := s.describe(err)
		writeJSON(w, status, map[string]string{"error": msg})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *implServer) handleReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxReportBody)
	if err := r.ParseForm(); err != nil {
		s.logger.Warn(r.Context(), "Invalid report form: %v", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	transcript := formText(r, "transcript")
	if transcript == "" {
		_, msg := s.describe(errNoTranscript)
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	summary := formText(r, "summary")
	if summary == "" {
		summary = summarizer.Extract(transcript)
	}
	format := strings.ToLower(strings.TrimSpace(r.PostFormValue("format")))
	if format == "" {
		format = "txt"
	}
	source := r.PostFormValue("filename")

	meta := report.Meta{
		Title:  s.cfg.Report.Title,
		Source: source,
		Model:  s.cfg.Transcription.Model,
	}
	stats := report.Count(transcript)

	var (
		body        []byte
		contentType string
	)
	switch format {
	case "txt":
		body = []byte(report.Text(meta, transcript, summary, stats))
		contentType = "text/plain; charset=utf-8"
	case "docx":
		var err error
		body, err = report.Docx(meta, transcript, summary, stats)
		if err != nil {
			s.logger.Error(r.Context(), "Failed to build docx report: %v", err)
			http.Error(w, "failed to build report", http.StatusInternalServerError)
			return
		}
		contentType = contentTypeDocx
	default:
		_, msg := s.describe(errBadFormat)
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	name := report.FileName(source, format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Warn(r.Context(), "Failed to write report: %v", err)
	}
}

func (s *implServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "ok",
		"token_configured": s.cfg.Transcription.Token != "",
	})
}

// transcribeUpload reads the "audio" field of a multipart request and runs it
// through the processor.
func (s *implServer) transcribeUpload(w http.ResponseWriter, r *http.Request) (processor.Result, error) {
	upload, err := s.readUpload(w, r)
	if err != nil {
		return processor.Result{}, err
	}
	return s.processor.Process(r.Context(), upload)
}

func (s *implServer) readUpload(w http.ResponseWriter, r *http.Request) (processor.Upload, error) {
	limit := s.cfg.MaxUploadBytes() + multipartOverhead
	if r.ContentLength > limit {
		return processor.Upload{}, processor.ErrFileTooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return processor.Upload{}, errNoFile
		}
		return processor.Upload{}, err
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("audio")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return processor.Upload{}, errNoFile
		}
		return processor.Upload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return processor.Upload{}, err
	}
	return processor.Upload{Name: header.Filename, Data: data}, nil
}

// formText returns a trimmed form value with CRLF line breaks, as browsers
// submit them, turned back into LF.
func formText(r *http.Request, key string) string {
	return strings.TrimSpace(strings.ReplaceAll(r.PostFormValue(key), "\r\n", "\n"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
