package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution times out.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNoReplaceFunc is returned when a script does not define replace.
	ErrNoReplaceFunc = errors.New("script does not define function replace")

	// ErrBadReturn is returned when replace does not return a string.
	ErrBadReturn = errors.New("replace must return a string")
)
