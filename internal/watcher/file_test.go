package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}
}

func waitChange(t *testing.T, w *FileWatcher) Change {
	t.Helper()
	select {
	case c := <-w.Changes():
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
		return Change{}
	}
}

func TestFileWatcherDeliversContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desc.txt")
	writeFile(t, path, "hello world")

	w, err := NewFileWatcher(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewFileWatcher error = %v", err)
	}
	defer w.Close()

	writeFile(t, path, "hello there world")

	c := waitChange(t, w)
	if string(c.Content) != "hello there world" {
		t.Errorf("Content = %q, want %q", c.Content, "hello there world")
	}
	if c.Path != w.Path() {
		t.Errorf("Path = %q, want %q", c.Path, w.Path())
	}
}

func TestFileWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "desc.txt")
	writeFile(t, path, "a")

	w, err := NewFileWatcher(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewFileWatcher error = %v", err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other.txt"), "b")
	writeFile(t, path, "c")

	c := waitChange(t, w)
	if string(c.Content) != "c" {
		t.Errorf("Content = %q, want %q", c.Content, "c")
	}
}

func TestNewFileWatcherErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileWatcher(filepath.Join(dir, "missing.txt"))
	if !errors.Is(err, ErrPathNotExist) {
		t.Errorf("missing file error = %v, want ErrPathNotExist", err)
	}

	_, err = NewFileWatcher(dir)
	if !errors.Is(err, ErrIsDirectory) {
		t.Errorf("directory error = %v, want ErrIsDirectory", err)
	}
}

func TestFileWatcherClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desc.txt")
	writeFile(t, path, "x")

	w, err := NewFileWatcher(path)
	if err != nil {
		t.Fatalf("NewFileWatcher error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close error = %v", err)
	}
	if _, ok := <-w.Changes(); ok {
		t.Error("Changes channel should be closed")
	}
}
