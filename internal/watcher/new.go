package watcher

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

// New creates a Watcher for inputDir that hands files with one of the given
// extensions to handler, at most maxConcurrent at a time.
func New(inputDir string, extensions []string, handler EventHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	// Default to 2 concurrent if not specified
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts["."+strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	return &implWatcher{
		inputDir:      inputDir,
		extensions:    exts,
		handler:       handler,
		logger:        log,
		watcher:       watcher,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
		settleDelay:   defaultSettleDelay,
	}, nil
}
