package annotate

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations.
var (
	// ErrInvalidRange indicates an alias range with start greater than end.
	ErrInvalidRange = errors.New("invalid range")

	// ErrIndexRemoved indicates an index was projected into text that an
	// earlier substitution removed. It points at conflicting alias placement.
	ErrIndexRemoved = errors.New("index has been removed")
)

// RangeError reports an invalid [start, end) pair.
type RangeError struct {
	Start int
	End   int
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("start index %d must be less than or equal to end index %d", e.Start, e.End)
}

// Unwrap returns ErrInvalidRange.
func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

// IndexRemovedError reports the index that fell inside a removed range.
type IndexRemovedError struct {
	Index int
}

// Error implements the error interface.
func (e *IndexRemovedError) Error() string {
	return fmt.Sprintf("index %d has been removed", e.Index)
}

// Unwrap returns ErrIndexRemoved.
func (e *IndexRemovedError) Unwrap() error {
	return ErrIndexRemoved
}
