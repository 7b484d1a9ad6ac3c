package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

// defaultSettleDelay gives the writer time to finish before the file is read.
const defaultSettleDelay = 500 * time.Millisecond

type implWatcher struct {
	inputDir      string
	extensions    map[string]bool
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	settleDelay   time.Duration
	wg            sync.WaitGroup
}

// Start monitors the inbox until ctx is cancelled, then waits for running
// handlers to finish.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Supported formats: %s", w.formats())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !event.Has(fsnotify.Create) {
				continue
			}
			if !w.isSupported(event.Name) {
				w.logger.Debug(ctx, "Ignoring unsupported file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New recording detected: %s", event.Name)

			// Blocks while max concurrent handlers are running
			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go w.handle(ctx, event.Name)
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// handle waits for the file to settle, then runs the handler. A handler that
// has started is not cancelled by shutdown; Start waits for it instead.
func (w *implWatcher) handle(ctx context.Context, filePath string) {
	defer w.wg.Done()
	defer func() { <-w.semaphore }()

	timer := time.NewTimer(w.settleDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		w.logger.Info(ctx, "Skipping %s: shutting down", filePath)
		return
	case <-timer.C:
	}

	if err := w.handler(context.WithoutCancel(ctx), filePath); err != nil {
		w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) isSupported(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return w.extensions[strings.ToLower(filepath.Ext(base))]
}

func (w *implWatcher) formats() string {
	list := make([]string, 0, len(w.extensions))
	for ext := range w.extensions {
		list = append(list, ext)
	}
	sort.Strings(list)
	return strings.Join(list, ", ")
}
