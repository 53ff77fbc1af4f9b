package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/transcript-genie/internal/logger"
)

// Writers need a moment to finish flushing a freshly created file before the
// handler reads it.
const settleDelay = 500 * time.Millisecond

type implWatcher struct {
	inputDir  string
	handler   EventHandler
	logger    logger.Logger
	watcher   *fsnotify.Watcher
	semaphore chan struct{}
	wg        sync.WaitGroup
}

// Start monitors the drop folder until ctx is done. Each new .txt transcript
// is handed to the handler on its own goroutine, bounded by the semaphore.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching for transcripts: %s (max concurrent: %d)", w.inputDir, cap(w.semaphore))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for in-flight transcripts...")
			w.wg.Wait()
			w.logger.Info(ctx, "Transcript watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isTranscriptFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-transcript file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New transcript detected: %s", event.Name)
			time.Sleep(settleDelay)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(path string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(ctx, path); err != nil {
						w.logger.Error(ctx, "Failed to process %s: %v", path, err)
					}
				}(event.Name)
			case <-ctx.Done():
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

// Stop closes the underlying file watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isTranscriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".txt"
}
