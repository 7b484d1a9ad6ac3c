package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/report"
	"github.com/nguyentantai21042004/lecture-notes/internal/summarizer"
	"github.com/nguyentantai21042004/lecture-notes/internal/transcriber"
)

type fakeTranscriber struct {
	text        string
	err         error
	calls       int
	contentType string
	audio       []byte
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, contentType string) (transcriber.Result, error) {
	f.calls++
	f.audio = audio
	f.contentType = contentType
	if f.err != nil {
		return transcriber.Result{}, f.err
	}
	return transcriber.Result{Text: f.text, Attempts: 2}, nil
}

type fakeSummarizer struct {
	err error
}

func (f fakeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return summarizer.Extract(text), nil
}

// fakeExecutor records commands and creates the output file named by the last argument.
type fakeExecutor struct {
	commands [][]string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.commands = append(f.commands, append([]string{name}, args...))
	return "", os.WriteFile(args[len(args)-1], []byte("flac-audio"), 0644)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Transcription: config.TranscriptionConfig{Token: "hf_test"},
		Paths: config.PathsConfig{
			Input:    filepath.Join(dir, "input"),
			Output:   filepath.Join(dir, "output"),
			Archived: filepath.Join(dir, "archived"),
			Temp:     filepath.Join(dir, "temp"),
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func newTestProcessor(cfg *config.Config, tr *fakeTranscriber) (*implProcessor, *fakeExecutor) {
	exec := &fakeExecutor{}
	p := New(cfg, tr, fakeSummarizer{}, exec, logger.New("none")).(*implProcessor)
	return p, exec
}

const transcript = "  Welcome to the lecture on cells. Cells are the basic unit of life.  "

func TestProcess(t *testing.T) {
	tr := &fakeTranscriber{text: transcript}
	p, _ := newTestProcessor(testConfig(t), tr)

	res, err := p.Process(context.Background(), Upload{Name: "Biology.MP3", Data: []byte("ID3audio")})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	trimmed := strings.TrimSpace(transcript)
	if res.Transcript != trimmed {
		t.Errorf("Transcript = %q, want %q", res.Transcript, trimmed)
	}
	if res.Summary != trimmed {
		t.Errorf("Summary = %q, want short transcript unchanged", res.Summary)
	}
	if diff := cmp.Diff(report.Count(trimmed), res.Stats); diff != "" {
		t.Errorf("Stats mismatch (-want +got):\n%s", diff)
	}
	if res.JobID == "" {
		t.Error("JobID is empty")
	}
	if res.FileName != "Biology.MP3" {
		t.Errorf("FileName = %q", res.FileName)
	}
	if res.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", res.Attempts)
	}
	if tr.contentType != "audio/mpeg" {
		t.Errorf("contentType = %q, want audio/mpeg", tr.contentType)
	}
}

func TestProcessRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		upload  Upload
		wantErr error
	}{
		{
			name:    "missing token",
			mutate:  func(cfg *config.Config) { cfg.Transcription.Token = "" },
			upload:  Upload{Name: "a.mp3", Data: []byte("x")},
			wantErr: transcriber.ErrMissingToken,
		},
		{
			name:    "empty file",
			upload:  Upload{Name: "a.mp3"},
			wantErr: ErrEmptyFile,
		},
		{
			name:    "unsupported type",
			upload:  Upload{Name: "notes.pdf", Data: []byte("x")},
			wantErr: ErrUnsupportedType,
		},
		{
			name:    "no extension",
			upload:  Upload{Name: "recording", Data: []byte("x")},
			wantErr: ErrUnsupportedType,
		},
		{
			name:    "too large",
			mutate:  func(cfg *config.Config) { cfg.Upload.MaxMB = 1 },
			upload:  Upload{Name: "a.wav", Data: make([]byte, 1024*1024+1)},
			wantErr: ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			tr := &fakeTranscriber{text: "unused"}
			p, _ := newTestProcessor(cfg, tr)

			_, err := p.Process(context.Background(), tt.upload)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Process() error = %v, want %v", err, tt.wantErr)
			}
			if tr.calls != 0 {
				t.Errorf("transcriber called %d times, want 0", tr.calls)
			}
		})
	}
}

func TestProcessAtSizeLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Upload.MaxMB = 1
	p, _ := newTestProcessor(cfg, &fakeTranscriber{text: "Some words were spoken here."})

	if _, err := p.Process(context.Background(), Upload{Name: "a.wav", Data: make([]byte, 1024*1024)}); err != nil {
		t.Errorf("Process() error = %v, want upload at the limit accepted", err)
	}
}

func TestProcessEmptyTranscript(t *testing.T) {
	p, _ := newTestProcessor(testConfig(t), &fakeTranscriber{text: "   \n "})

	_, err := p.Process(context.Background(), Upload{Name: "a.ogg", Data: []byte("x")})
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Errorf("Process() error = %v, want ErrEmptyTranscript", err)
	}
}

func TestProcessTranscriptionError(t *testing.T) {
	p, _ := newTestProcessor(testConfig(t), &fakeTranscriber{err: transcriber.ErrRetriesExhausted})

	_, err := p.Process(context.Background(), Upload{Name: "a.flac", Data: []byte("x")})
	if !errors.Is(err, transcriber.ErrRetriesExhausted) {
		t.Errorf("Process() error = %v, want ErrRetriesExhausted", err)
	}
}

func TestProcessSummaryError(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, &fakeTranscriber{text: "words"}, fakeSummarizer{err: context.Canceled}, &fakeExecutor{}, logger.New("none"))

	_, err := p.Process(context.Background(), Upload{Name: "a.webm", Data: []byte("x")})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Process() error = %v, want context.Canceled", err)
	}
}

func TestProcessFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Report.Docx = true
	if err := os.MkdirAll(cfg.Paths.Input, 0755); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(cfg.Paths.Input, "week1.intro.mp3")
	if err := os.WriteFile(src, []byte("ID3audio"), 0644); err != nil {
		t.Fatal(err)
	}

	tr := &fakeTranscriber{text: transcript}
	p, exec := newTestProcessor(cfg, tr)

	if err := p.ProcessFile(context.Background(), src); err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if len(exec.commands) != 0 {
		t.Errorf("ffmpeg should not run for audio files, ran %v", exec.commands)
	}

	txt, err := os.ReadFile(filepath.Join(cfg.Paths.Output, "summary_week1.txt"))
	if err != nil {
		t.Fatalf("read text report: %v", err)
	}
	if !strings.Contains(string(txt), "Source: week1.intro.mp3") {
		t.Errorf("text report missing source line:\n%s", txt)
	}
	if !strings.Contains(string(txt), "Cells are the basic unit of life.") {
		t.Errorf("text report missing transcript:\n%s", txt)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Output, "summary_week1.docx")); err != nil {
		t.Errorf("docx report not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Archived, "week1.intro.mp3")); err != nil {
		t.Errorf("source not archived: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("source still in inbox: %v", err)
	}
}

func TestProcessFileExtractsVideoAudio(t *testing.T) {
	cfg := testConfig(t)
	cfg.FFmpeg.Enabled = true
	if err := os.MkdirAll(cfg.Paths.Input, 0755); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(cfg.Paths.Input, "seminar.mov")
	if err := os.WriteFile(src, []byte("moov"), 0644); err != nil {
		t.Fatal(err)
	}

	tr := &fakeTranscriber{text: transcript}
	p, exec := newTestProcessor(cfg, tr)

	if err := p.ProcessFile(context.Background(), src); err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if len(exec.commands) != 1 || exec.commands[0][0] != "ffmpeg" {
		t.Fatalf("commands = %v, want one ffmpeg call", exec.commands)
	}
	if string(tr.audio) != "flac-audio" {
		t.Errorf("transcribed %q, want extracted audio", tr.audio)
	}
	if tr.contentType != "audio/flac" {
		t.Errorf("contentType = %q, want audio/flac", tr.contentType)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Output, "summary_seminar.txt")); err != nil {
		t.Errorf("text report not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Temp, "seminar_16k.flac")); !os.IsNotExist(err) {
		t.Errorf("extracted audio not cleaned up: %v", err)
	}
}

func TestWatchExtensions(t *testing.T) {
	accepted := []string{"mp3", "mp4"}
	if diff := cmp.Diff(accepted, WatchExtensions(accepted, false)); diff != "" {
		t.Errorf("WatchExtensions(ffmpeg off) mismatch (-want +got):\n%s", diff)
	}
	want := []string{"mp3", "mp4", "webm", "mov", "mkv", "avi", "m4v"}
	if diff := cmp.Diff(want, WatchExtensions(accepted, true)); diff != "" {
		t.Errorf("WatchExtensions(ffmpeg on) mismatch (-want +got):\n%s", diff)
	}
}

func TestSemaphore(t *testing.T) {
	s := newSemaphore(1)
	if err := s.acquire(context.Background()); err != nil {
		t.Fatalf("acquire() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("acquire() on full semaphore = %v, want context.Canceled", err)
	}

	s.release()
	if err := s.acquire(context.Background()); err != nil {
		t.Errorf("acquire() after release error = %v", err)
	}
}
