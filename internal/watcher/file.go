// Package watcher delivers the content of a file each time it is saved.
package watcher

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before the file
// is read.
const DefaultDebounce = 100 * time.Millisecond

// Change is a saved version of the watched file.
type Change struct {
	Path      string
	Content   []byte
	Timestamp time.Time
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDebounce sets the quiet period. Non-positive values use DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *FileWatcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// FileWatcher watches one file. Writes, creates and renames within the
// debounce window are coalesced, and a Change is sent only when the
// content differs from the last one seen.
//
// The parent directory is watched so that editors replacing the file on
// save are followed.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration

	last []byte

	changes chan Change
	errors  chan error

	mu       sync.Mutex
	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewFileWatcher starts watching path.
func NewFileWatcher(path string, opts ...Option) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotExist, path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	initial, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &FileWatcher{
		watcher:  fsw,
		path:     absPath,
		debounce: DefaultDebounce,
		last:     initial,
		changes:  make(chan Change, 1),
		errors:   make(chan error, 10),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *FileWatcher) Path() string {
	return w.path
}

// Changes returns the channel of saved versions.
func (w *FileWatcher) Changes() <-chan Change {
	return w.changes
}

// Errors returns the error channel.
func (w *FileWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes its channels.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()
	close(w.changes)
	close(w.errors)
	return w.watcher.Close()
}

func (w *FileWatcher) processLoop() {
	defer w.closedWg.Done()

	var fire <-chan time.Time
	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				fire = time.After(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)

		case <-fire:
			fire = nil
			w.emit()
		}
	}
}

// relevant reports whether ev may have changed the file content.
func (w *FileWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create)
}

func (w *FileWatcher) emit() {
	content, err := os.ReadFile(w.path)
	if err != nil {
		if !os.IsNotExist(err) {
			w.sendError(err)
		}
		return
	}
	if bytes.Equal(content, w.last) {
		return
	}
	w.last = content

	select {
	case w.changes <- Change{Path: w.path, Content: content, Timestamp: time.Now()}:
	case <-w.closeCh:
	}
}

func (w *FileWatcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
