// Package filesystem watches a folder for PDF manuals.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/pragati-cli/internal/logger"
)

// DefaultDebounce is how long a path must be quiet before it is reported.
const DefaultDebounce = 500 * time.Millisecond

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("watcher closed")

// Watcher reports PDF files that are created or written under a root directory.
type Watcher struct {
	root     string
	debounce time.Duration

	mu      sync.Mutex
	closed  bool
	watcher *fsnotify.Watcher
}

// New creates a watcher for root using DefaultDebounce.
func New(root string) *Watcher {
	return &Watcher{root: root, debounce: DefaultDebounce}
}

// WithDebounce sets the per-path quiet period.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Root returns the watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Existing returns the PDF files already present under root.
func (w *Watcher) Existing() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != w.root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && isPDF(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", w.root, err)
	}
	return paths, nil
}

// Watch starts watching and returns a channel of settled PDF paths. Each
// path is sent once per burst of writes, after it has been quiet for the
// debounce period. The channel is closed when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) (<-chan string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrClosed
	}

	info, err := os.Stat(w.root)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path error: %s is not a directory", w.root)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := addTree(fw, w.root); err != nil {
		fw.Close() //nolint:errcheck
		return nil, err
	}
	w.watcher = fw

	out := make(chan string)
	go w.loop(ctx, fw, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, out chan<- string) {
	d := newDebouncer(w.debounce)

	defer func() {
		d.stop()
		fw.Close() //nolint:errcheck
		close(out)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) && !isHidden(filepath.Base(event.Name)) {
				if err := addTree(fw, event.Name); err != nil {
					logger.Warn("watch %s: %v", event.Name, err)
				}
				continue
			}
			path, ok := w.handleFsEvent(event)
			if !ok {
				continue
			}
			if d.touch(path) {
				logger.Debug("Change detected: %s", path)
			}

		case t := <-d.ready:
			path, ok := d.settle(t)
			if !ok {
				continue
			}
			select {
			case out <- path:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch %s: %v", w.root, err)
		}
	}
}

// tick is a fired debounce timer for one arming of a path.
type tick struct {
	path string
	gen  uint64
}

type pendingPath struct {
	timer *time.Timer
	gen   uint64
}

// debouncer delays paths until they have been quiet for delay. Re-arming a
// path whose timer already fired makes the earlier tick stale. It is owned
// by a single goroutine.
type debouncer struct {
	delay   time.Duration
	ready   chan tick
	done    chan struct{}
	gen     uint64
	pending map[string]pendingPath
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		ready:   make(chan tick),
		done:    make(chan struct{}),
		pending: make(map[string]pendingPath),
	}
}

// touch (re)arms path and reports whether it was not already pending.
func (d *debouncer) touch(path string) bool {
	p, exists := d.pending[path]
	if exists {
		p.timer.Stop()
	}
	d.gen++
	t := tick{path: path, gen: d.gen}
	d.pending[path] = pendingPath{
		gen: t.gen,
		timer: time.AfterFunc(d.delay, func() {
			select {
			case d.ready <- t:
			case <-d.done:
			}
		}),
	}
	return !exists
}

// settle returns the path of t unless t is stale.
func (d *debouncer) settle(t tick) (string, bool) {
	p, ok := d.pending[t.path]
	if !ok || p.gen != t.gen {
		return "", false
	}
	delete(d.pending, t.path)
	return t.path, true
}

func (d *debouncer) stop() {
	close(d.done)
	for _, p := range d.pending {
		p.timer.Stop()
	}
}

// handleFsEvent returns the path of a created or written PDF file.
// Directories, hidden files, removals, renames and chmods are ignored.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if isHidden(filepath.Base(event.Name)) || !isPDF(event.Name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return event.Name, true
}

// Close stops the active watch. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

// addTree watches dir and every non-hidden directory below it.
func addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
