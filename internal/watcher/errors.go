package watcher

import "errors"

// Errors returned by the file watcher.
var (
	// ErrPathNotExist indicates the watched file does not exist.
	ErrPathNotExist = errors.New("path does not exist")

	// ErrIsDirectory indicates a directory was given instead of a file.
	ErrIsDirectory = errors.New("path is a directory")
)
