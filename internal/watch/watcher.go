// Package watch observes the site source tree and triggers rebuilds when
// files change. Events are debounced so one editor save or one bulk copy
// results in a single rebuild.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"dashsite/internal/walker"
)

const (
	// settleDelay is how long the tree must stay quiet before the pending
	// batch of changes is reported as one rebuild.
	settleDelay = 500 * time.Millisecond
	// pollEvery is the cadence at which the pending batch is checked.
	pollEvery = 100 * time.Millisecond
)

// Watcher recursively watches a source tree and invokes a callback once per
// settled burst of file changes.
type Watcher struct {
	root     string
	output   string
	onChange func(paths []string)
	log      *zap.Logger

	fsw *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]time.Time
	running bool

	stopCh chan struct{}
	doneCh chan struct{}
}

// New prepares a watcher for the tree rooted at root. Changes under output
// never trigger the callback, so a build writing into a directory below the
// root cannot retrigger itself. onChange receives the sorted changed paths
// after each settled burst. Call Start to begin watching.
func New(root, output string, onChange func(paths []string), log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch: resolve root: %w", err)
	}
	absOutput, err := filepath.Abs(output)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch: resolve output: %w", err)
	}
	return &Watcher{
		root:     absRoot,
		output:   absOutput,
		onChange: onChange,
		log:      log,
		fsw:      fsw,
		pending:  make(map[string]time.Time),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start registers the root and its subdirectories with the underlying
// watcher and launches the event loop. It returns immediately. The loop
// exits when ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.addTree(w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	go w.run(ctx)
	w.log.Info("watching for changes", zap.String("dir", w.root))
	return nil
}

// Stop terminates the event loop and releases the underlying watcher.
// It blocks until the loop has exited and is a no-op if Start never ran.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.fsw.Close()
}

// addTree registers dir and every subdirectory that is not on the skip list
// and not the output tree. Directories that cannot be registered are logged
// and skipped rather than failing the whole watch.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && (walker.SkipDir(d.Name()) || path == w.output) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.log.Warn("cannot watch directory", zap.String("dir", path), zap.Error(err))
		}
		return nil
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-ticker.C:
			w.flush(time.Now())
		}
	}
}

// handleEvent records a relevant change for debouncing. A newly created
// directory joins the watch immediately so files written into it are seen.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	if w.ignores(event.Name) {
		return
	}
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.log.Warn("cannot watch new directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return
		}
	}

	w.mu.Lock()
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()
}

// flush invokes the callback once every pending change is older than the
// settle delay. Firing per batch rather than per file keeps one save, one
// git checkout, or one generated tree to a single rebuild.
func (w *Watcher) flush(now time.Time) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	for _, at := range w.pending {
		if now.Sub(at) < settleDelay {
			w.mu.Unlock()
			return
		}
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]time.Time)
	w.mu.Unlock()

	sort.Strings(paths)
	w.log.Info("source changed", zap.Int("files", len(paths)), zap.String("first", paths[0]))
	w.onChange(paths)
}

// ignores reports whether a changed path is editor noise, lives in a
// skipped directory, or belongs to the output tree.
func (w *Watcher) ignores(path string) bool {
	abs, err := filepath.Abs(path)
	if err == nil {
		if abs == w.output || strings.HasPrefix(abs, w.output+string(filepath.Separator)) {
			return true
		}
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if walker.SkipDir(part) {
			return true
		}
	}
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	switch {
	case strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".swx"),
		strings.HasSuffix(base, ".tmp"):
		return true
	}
	return false
}
