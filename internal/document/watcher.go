package document

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher watches a document's backing file for modifications made
// outside the editor, so the host can offer a reload before stomping on
// them at save time. Events are debounced: editors often write a file
// several times in quick succession.
//
// The watcher only sets a flag from its goroutine; it never touches the
// document, which stays single-threaded.
type FileWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	logger   *zap.Logger
	debounce time.Duration

	lastWrite time.Time
	pending   bool
	changed   bool

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewFileWatcher creates a watcher for path. Call Start to begin watching.
func NewFileWatcher(path string, debounce time.Duration, logger *zap.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &FileWatcher{
		watcher:  w,
		path:     path,
		logger:   logger,
		debounce: debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching the file's directory (watching the directory, not
// the file, survives editors that replace files by rename). Non-blocking.
func (fw *FileWatcher) Start(ctx context.Context) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	fw.running = true
	fw.mu.Unlock()

	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		fw.mu.Lock()
		fw.running = false
		fw.mu.Unlock()
		return err
	}
	fw.logger.Debug("watching backing file", zap.String("path", fw.path))

	go fw.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit. Safe to call
// more than once.
func (fw *FileWatcher) Stop() {
	fw.mu.Lock()
	if !fw.running {
		fw.mu.Unlock()
		return
	}
	fw.running = false
	fw.mu.Unlock()

	close(fw.stopCh)
	<-fw.doneCh

	if err := fw.watcher.Close(); err != nil {
		fw.logger.Warn("error closing watcher", zap.Error(err))
	}
}

func (fw *FileWatcher) run(ctx context.Context) {
	defer close(fw.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-fw.stopCh:
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("watch error", zap.Error(err))
		case <-ticker.C:
			fw.settle()
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	if event.Name != fw.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	fw.logger.Debug("backing file event", zap.String("op", event.Op.String()))
	fw.mu.Lock()
	fw.lastWrite = time.Now()
	fw.pending = true
	fw.mu.Unlock()
}

// settle promotes a pending event to the changed flag once writes have
// stopped for the debounce window.
func (fw *FileWatcher) settle() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.pending && time.Since(fw.lastWrite) >= fw.debounce {
		fw.pending = false
		fw.changed = true
	}
}

// ChangedOnDisk reports whether the backing file changed since the flag was
// last cleared.
func (fw *FileWatcher) ChangedOnDisk() bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.changed
}

// ClearChanged resets the changed flag, typically right after a reload or a
// save the editor itself performed.
func (fw *FileWatcher) ClearChanged() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.changed = false
}
