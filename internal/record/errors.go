package record

import "errors"

// Errors returned when reading records and term sets.
var (
	// ErrInvalidJSON indicates the record is not valid JSON.
	ErrInvalidJSON = errors.New("invalid record json")

	// ErrNotObject indicates the record is not a JSON object.
	ErrNotObject = errors.New("record must be a json object")

	// ErrInvalidTerm indicates a term set entry is missing required fields.
	ErrInvalidTerm = errors.New("invalid term set entry")
)
