package csv

import (
	"errors"

	"github.com/shapestone/shape-csv-window/internal/extractor"
)

// DecodeError represents a field that is not valid UTF-8, with its position
// in the source data. Row and Column are 0-based source indexes, so they do not
// depend on the window. Offset is the byte offset where the field starts.
//
//	var de *csv.DecodeError
//	if errors.As(err, &de) {
//	    fmt.Println("bad field at row", de.Row, "column", de.Column)
//	}
type DecodeError = extractor.DecodeError

// Common extraction errors
var (
	// ErrInvalidUTF8 indicates a field whose bytes are not valid UTF-8.
	// It is wrapped by *DecodeError.
	ErrInvalidUTF8 = extractor.ErrInvalidUTF8

	// ErrInvalidWindow indicates a window with a negative start or count.
	ErrInvalidWindow = errors.New("csv: invalid window")
)

// OptionsError describes one invalid window field.
type OptionsError struct {
	// Field is the JSON name of the offending field, e.g. "row_count".
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "csv: invalid " + e.Field + ": " + e.Message
}
