package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "explicit extractive mode",
			config: Config{
				Summary: SummaryConfig{Mode: "Extractive"},
			},
			wantErr: false,
		},
		{
			name: "unknown summary mode",
			config: Config{
				Summary: SummaryConfig{Mode: "abstractive"},
			},
			wantErr: true,
		},
		{
			name: "gemini without keys",
			config: Config{
				Summary: SummaryConfig{Mode: "gemini"},
			},
			wantErr: true,
		},
		{
			name: "gemini with keys",
			config: Config{
				Summary: SummaryConfig{Mode: "gemini"},
				Gemini:  GeminiConfig{APIKeys: []string{"k1"}},
			},
			wantErr: false,
		},
		{
			name: "negative attempts",
			config: Config{
				Transcription: TranscriptionConfig{MaxAttempts: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	var cfg Config
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	want := TranscriptionConfig{
		Endpoint:       DefaultEndpoint,
		Model:          DefaultModel,
		MaxAttempts:    5,
		RequestTimeout: 120 * time.Second,
		MaxWait:        60 * time.Second,
		WaitPadding:    3 * time.Second,
		LoadingBackoff: 10 * time.Second,
		TimeoutBackoff: 10 * time.Second,
		ErrorBackoff:   8 * time.Second,
	}
	if diff := cmp.Diff(want, cfg.Transcription); diff != "" {
		t.Errorf("Transcription defaults mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(DefaultExtensions, cfg.Upload.Extensions); diff != "" {
		t.Errorf("Extensions mismatch (-want +got):\n%s", diff)
	}
	if cfg.MaxUploadBytes() != 25*1024*1024 {
		t.Errorf("MaxUploadBytes() = %d, want %d", cfg.MaxUploadBytes(), 25*1024*1024)
	}
	if cfg.Summary.Mode != SummaryExtractive {
		t.Errorf("Summary.Mode = %q, want %q", cfg.Summary.Mode, SummaryExtractive)
	}
}

func TestValidateNormalizesExtensions(t *testing.T) {
	cfg := Config{Upload: UploadConfig{Extensions: []string{".MP3", " wav "}}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if diff := cmp.Diff([]string{"mp3", "wav"}, cfg.Upload.Extensions); diff != "" {
		t.Errorf("Extensions mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateWatch(t *testing.T) {
	cfg := Config{}
	if err := cfg.ValidateWatch(); err == nil {
		t.Error("ValidateWatch() should fail without paths")
	}
	cfg.Paths = PathsConfig{Input: "data/input", Output: "data/output"}
	if err := cfg.ValidateWatch(); err != nil {
		t.Errorf("ValidateWatch() error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("HF_TOKEN", "hf_test_token")
	t.Setenv("LOG_LEVEL", "")

	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
server:
  addr: ":9090"

transcription:
  max_attempts: 3
  request_timeout: 30s
  error_backoff: 2s

upload:
  max_mb: 10

paths:
  input: "data/input"
  output: "data/output"

logging:
  level: "debug"
  format: "json"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %v, want %v", cfg.Server.Addr, ":9090")
	}
	if cfg.Transcription.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %v, want %v", cfg.Transcription.MaxAttempts, 3)
	}
	if cfg.Transcription.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want %v", cfg.Transcription.RequestTimeout, 30*time.Second)
	}
	if cfg.Transcription.ErrorBackoff != 2*time.Second {
		t.Errorf("ErrorBackoff = %v, want %v", cfg.Transcription.ErrorBackoff, 2*time.Second)
	}
	if cfg.Transcription.LoadingBackoff != DefaultLoadingBackoff {
		t.Errorf("LoadingBackoff = %v, want %v", cfg.Transcription.LoadingBackoff, DefaultLoadingBackoff)
	}
	if cfg.Transcription.Token != "hf_test_token" {
		t.Errorf("Token = %q, want %q", cfg.Transcription.Token, "hf_test_token")
	}
	if cfg.Upload.MaxMB != 10 {
		t.Errorf("MaxMB = %v, want %v", cfg.Upload.MaxMB, 10)
	}
	if cfg.Paths.Input != "data/input" {
		t.Errorf("Input = %v, want %v", cfg.Paths.Input, "data/input")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %v, want %v", cfg.Logging.Level, "debug")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("HF_TOKEN", " hf_abc ")
	t.Setenv("HF_ENDPOINT", "http://localhost:9999/model")
	t.Setenv("LISTEN_ADDR", "127.0.0.1:7000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("GEMINI_API_KEYS", "k1, k2,,k3")

	var cfg Config
	cfg.ApplyEnv()

	if cfg.Transcription.Token != "hf_abc" {
		t.Errorf("Token = %q, want %q", cfg.Transcription.Token, "hf_abc")
	}
	if cfg.Transcription.Endpoint != "http://localhost:9999/model" {
		t.Errorf("Endpoint = %q", cfg.Transcription.Endpoint)
	}
	if cfg.Server.Addr != "127.0.0.1:7000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if diff := cmp.Diff([]string{"k1", "k2", "k3"}, cfg.Gemini.APIKeys); diff != "" {
		t.Errorf("APIKeys mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("LECTURE_NOTES_TEST_VAR=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LECTURE_NOTES_TEST_VAR", "")
	os.Unsetenv("LECTURE_NOTES_TEST_VAR")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), envPath); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("LECTURE_NOTES_TEST_VAR"); got != "from-file" {
		t.Errorf("LECTURE_NOTES_TEST_VAR = %q, want %q", got, "from-file")
	}
}
