package annotation

import (
	"errors"
	"fmt"
)

// Errors returned by document operations.
var (
	// ErrUnknownAnnotation indicates no annotation has the given ID.
	ErrUnknownAnnotation = errors.New("unknown annotation")

	// ErrAnnotationExists indicates an annotation with the ID already exists.
	ErrAnnotationExists = errors.New("annotation already exists")

	// ErrMentionOverlap indicates a new mention overlaps an existing one.
	ErrMentionOverlap = errors.New("mention overlaps existing mention")

	// ErrOutOfRange indicates a mention range outside the plain text.
	ErrOutOfRange = errors.New("mention range out of range")
)

// OverlapError reports the mention a new mention collided with.
type OverlapError struct {
	// AnnotationID is the annotation owning the existing mention.
	AnnotationID string
	// Mention is the existing mention.
	Mention *Mention
}

// Error implements the error interface.
func (e *OverlapError) Error() string {
	return fmt.Sprintf("mention overlaps %q at [%d:%d) of annotation %s",
		e.Mention.Text, e.Mention.Start(), e.Mention.End(), e.AnnotationID)
}

// Unwrap returns ErrMentionOverlap.
func (e *OverlapError) Unwrap() error {
	return ErrMentionOverlap
}
