package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/httpserver"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/metrics"
	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
	"github.com/nguyentantai21042004/lecture-notes/internal/summarizer"
	"github.com/nguyentantai21042004/lecture-notes/internal/transcriber"
	"github.com/nguyentantai21042004/lecture-notes/internal/watcher"
	"github.com/nguyentantai21042004/lecture-notes/pkg/executor"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	envPath := flag.String("env", ".env", "path to a .env file with secrets")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [serve|watch]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	mode := "serve"
	if flag.NArg() > 0 {
		mode = flag.Arg(0)
	}
	if mode != "serve" && mode != "watch" {
		flag.Usage()
		os.Exit(2)
	}

	if err := config.LoadDotEnv(*envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", *envPath, err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Lecture Notes (%s mode)", mode)
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Model: %s", cfg.Transcription.Model)
	log.Info(ctx, "Summary mode: %s", cfg.Summary.Mode)
	if cfg.Transcription.Token == "" {
		log.Warn(ctx, "HF_TOKEN is not set; transcription requests will be rejected")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.Register(reg)

	// Initialize dependencies
	sum, err := summarizer.New(cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to create summarizer: %v", err)
		os.Exit(1)
	}
	tr := transcriber.New(cfg.Transcription, log)
	proc := processor.New(cfg, tr, sum, executor.New(), log)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch mode {
	case "watch":
		err = runWatch(ctx, cfg, proc, log)
	default:
		err = runServe(ctx, cfg, proc, log, reg)
	}
	if err != nil {
		log.Error(context.Background(), "%v", err)
		os.Exit(1)
	}
	log.Info(context.Background(), "Lecture Notes stopped")
}

// loadConfig reads path when it exists and otherwise starts from defaults
// plus the environment.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg := &config.Config{}
		cfg.ApplyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.Load(path)
}

func runServe(ctx context.Context, cfg *config.Config, proc processor.Processor, log logger.Logger, reg *prometheus.Registry) error {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpserver.New(cfg, proc, log, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info(ctx, "Listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info(context.Background(), "Shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runWatch(ctx context.Context, cfg *config.Config, proc processor.Processor, log logger.Logger) error {
	if err := cfg.ValidateWatch(); err != nil {
		return err
	}
	if err := ensureDirectories(cfg); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	exts := processor.WatchExtensions(cfg.Upload.Extensions, cfg.FFmpeg.Enabled)
	w, err := watcher.New(cfg.Paths.Input, exts, proc.ProcessFile, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watcher: %w", err)
	}
	return nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
