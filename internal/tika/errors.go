package tika

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced immediately, never retried.
var (
	ErrUnknownOption   = errors.New("unknown configuration option")
	ErrUnknownDocument = errors.New("unknown document")
)

// ExtractionError reports a tool invocation that exited with a non-success
// status. It aborts the remaining batch items and carries the captured
// error stream.
type ExtractionError struct {
	Document string
	Stderr   string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("extraction failed for %q: %v: %s", e.Document, e.Err, e.Stderr)
	}
	return fmt.Sprintf("extraction failed for %q: %v", e.Document, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// OutputParseError reports raw tool output that is not valid JSON or
// well-formed markup.
type OutputParseError struct {
	Document string
	Mode     string // "json" | "xml" | "html"
	Err      error
}

func (e *OutputParseError) Error() string {
	return fmt.Sprintf("parsing %s output for %q: %v", e.Mode, e.Document, e.Err)
}

func (e *OutputParseError) Unwrap() error {
	return e.Err
}
