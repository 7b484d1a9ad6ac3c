package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultEndpoint = "https://api-inference.huggingface.co/models/openai/whisper-large-v3"
	DefaultModel    = "openai/whisper-large-v3"

	DefaultMaxAttempts    = 5
	DefaultRequestTimeout = 120 * time.Second
	DefaultMaxWait        = 60 * time.Second
	DefaultWaitPadding    = 3 * time.Second
	DefaultLoadingBackoff = 10 * time.Second
	DefaultTimeoutBackoff = 10 * time.Second
	DefaultErrorBackoff   = 8 * time.Second

	DefaultMaxUploadMB = 25

	SummaryExtractive = "extractive"
	SummaryGemini     = "gemini"
)

// DefaultExtensions lists the audio containers accepted for upload.
var DefaultExtensions = []string{"mp3", "mp4", "wav", "m4a", "webm", "flac", "ogg"}

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Summary       SummaryConfig       `yaml:"summary"`
	Upload        UploadConfig        `yaml:"upload"`
	Report        ReportConfig        `yaml:"report"`
	Paths         PathsConfig         `yaml:"paths"`
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
	Gemini        GeminiConfig        `yaml:"gemini"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type TranscriptionConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	// Token is only ever read from the environment (HF_TOKEN).
	Token string `yaml:"-"`

	MaxAttempts    int           `yaml:"max_attempts"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxWait        time.Duration `yaml:"max_wait"`
	WaitPadding    time.Duration `yaml:"wait_padding"`
	LoadingBackoff time.Duration `yaml:"loading_backoff"`
	TimeoutBackoff time.Duration `yaml:"timeout_backoff"`
	ErrorBackoff   time.Duration `yaml:"error_backoff"`
}

type SummaryConfig struct {
	Mode string `yaml:"mode"`
}

type UploadConfig struct {
	MaxMB      int      `yaml:"max_mb"`
	Extensions []string `yaml:"extensions"`
}

type ReportConfig struct {
	Title string `yaml:"title"`
	Docx  bool   `yaml:"docx"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type FFmpegConfig struct {
	Enabled    bool   `yaml:"enabled"`
	BinaryPath string `yaml:"binary_path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	BaseURL string   `yaml:"base_url"`
	APIKeys []string `yaml:"-"`
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Upload.MaxMB) * 1024 * 1024
}

// Validate checks the configuration and fills defaults for unset values.
func (c *Config) Validate() error {
	if c.Transcription.MaxAttempts < 0 {
		return fmt.Errorf("transcription.max_attempts must not be negative")
	}
	if c.Upload.MaxMB < 0 {
		return fmt.Errorf("upload.max_mb must not be negative")
	}

	c.Summary.Mode = strings.ToLower(strings.TrimSpace(c.Summary.Mode))
	switch c.Summary.Mode {
	case "":
		c.Summary.Mode = SummaryExtractive
	case SummaryExtractive, SummaryGemini:
	default:
		return fmt.Errorf("summary.mode %q is not one of %s, %s", c.Summary.Mode, SummaryExtractive, SummaryGemini)
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Transcription.Endpoint == "" {
		c.Transcription.Endpoint = DefaultEndpoint
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = DefaultModel
	}
	if c.Transcription.MaxAttempts == 0 {
		c.Transcription.MaxAttempts = DefaultMaxAttempts
	}
	if c.Transcription.RequestTimeout == 0 {
		c.Transcription.RequestTimeout = DefaultRequestTimeout
	}
	if c.Transcription.MaxWait == 0 {
		c.Transcription.MaxWait = DefaultMaxWait
	}
	if c.Transcription.WaitPadding == 0 {
		c.Transcription.WaitPadding = DefaultWaitPadding
	}
	if c.Transcription.LoadingBackoff == 0 {
		c.Transcription.LoadingBackoff = DefaultLoadingBackoff
	}
	if c.Transcription.TimeoutBackoff == 0 {
		c.Transcription.TimeoutBackoff = DefaultTimeoutBackoff
	}
	if c.Transcription.ErrorBackoff == 0 {
		c.Transcription.ErrorBackoff = DefaultErrorBackoff
	}
	if c.Upload.MaxMB == 0 {
		c.Upload.MaxMB = DefaultMaxUploadMB
	}
	if len(c.Upload.Extensions) == 0 {
		c.Upload.Extensions = append([]string(nil), DefaultExtensions...)
	}
	for i, ext := range c.Upload.Extensions {
		c.Upload.Extensions[i] = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	}
	if c.Report.Title == "" {
		c.Report.Title = "Lecture Summary"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Summary.Mode == SummaryGemini && len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("summary.mode gemini requires GEMINI_API_KEYS")
	}

	return nil
}

// ValidateWatch checks the settings the directory watcher needs on top of Validate.
func (c *Config) ValidateWatch() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	return nil
}
