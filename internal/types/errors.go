package types

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR KINDS
// =============================================================================
// Every failure is fatal. Callers tell them apart with errors.Is.

var (
	// ErrInsufficientArguments is returned when fewer than two input paths are given.
	ErrInsufficientArguments = errors.New("insufficient arguments: need <passwd-file> <group-file>")

	// ErrFileUnreadable is returned when an input file cannot be opened or read.
	ErrFileUnreadable = errors.New("input file not found or unreadable")

	// ErrMalformedRecord is returned when an account line has too few fields.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrOutputWrite is returned when an output file cannot be created or written.
	ErrOutputWrite = errors.New("output write failure")

	// ErrSchemaViolation is returned when the rendered document fails the
	// output self-check.
	ErrSchemaViolation = errors.New("rendered document violates output schema")
)

// StageError names the pipeline stage an error came from.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
