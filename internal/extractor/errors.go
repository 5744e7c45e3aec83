package extractor

import (
	"errors"
	"fmt"
)

// ErrInvalidUTF8 indicates a field whose bytes are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("field is not valid UTF-8")

// DecodeError reports a field that could not be decoded, with its position in
// the source.
type DecodeError struct {
	// Row is the 0-based index of the record in the source.
	Row int
	// Column is the 0-based index of the field within its record.
	Column int
	// Offset is the byte offset in the input where the field starts.
	Offset int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error on row %d, column %d (offset %d): %v", e.Row, e.Column, e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
