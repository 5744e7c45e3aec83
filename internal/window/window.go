// Package window implements the row and column selection applied while
// extracting a CSV table.
//
// Everything here is pure arithmetic on indexes so the boundary behavior can be
// tested without any input bytes.
package window

import (
	"errors"
	"fmt"
)

// Unbounded marks a count with no upper limit.
const Unbounded = -1

// ErrNegative is returned by Validate for negative starts or counts other than Unbounded.
var ErrNegative = errors.New("window bound is negative")

// Window selects rows [StartRow, StartRow+RowCount) and columns
// [StartCol, StartCol+ColCount) of a table. A count of Unbounded extends the
// range to the end.
type Window struct {
	StartRow int
	RowCount int
	StartCol int
	ColCount int
}

// All returns a window selecting every row and every column.
func All() Window {
	return Window{RowCount: Unbounded, ColCount: Unbounded}
}

// Validate checks that starts are non-negative and counts are non-negative or Unbounded.
func (w Window) Validate() error {
	switch {
	case w.StartRow < 0:
		return fmt.Errorf("start row %d: %w", w.StartRow, ErrNegative)
	case w.StartCol < 0:
		return fmt.Errorf("start column %d: %w", w.StartCol, ErrNegative)
	case w.RowCount < Unbounded:
		return fmt.Errorf("row count %d: %w", w.RowCount, ErrNegative)
	case w.ColCount < Unbounded:
		return fmt.Errorf("column count %d: %w", w.ColCount, ErrNegative)
	}
	return nil
}

// Decision is the outcome of testing one completed row against the row window.
type Decision struct {
	// Include reports whether the row belongs to the output table.
	Include bool
	// Stop reports whether scanning must end without consuming more input.
	Stop bool
}

// Decide tests the row at rowIndex against rows [startRow, startRow+rowCount).
//
// Both tests use the same rowIndex, before the caller increments it. Include is
// evaluated first and Stop second, so the last wanted row is kept and the row
// after it ends the scan.
func Decide(rowIndex, startRow, rowCount int) Decision {
	if rowIndex < startRow {
		return Decision{}
	}
	if rowCount == Unbounded {
		return Decision{Include: true}
	}
	// rowIndex-startRow cannot overflow, startRow+rowCount can.
	offset := rowIndex - startRow
	return Decision{
		Include: offset < rowCount,
		Stop:    offset >= rowCount,
	}
}

// Columns returns a copy of row[startCol:startCol+colCount], clamped to the
// row's width. A start past the end yields an empty row and a count past the
// end yields the remaining fields. The result never aliases row.
func Columns(row []string, startCol, colCount int) []string {
	if startCol >= len(row) {
		return []string{}
	}
	end := len(row)
	if colCount != Unbounded && colCount < end-startCol {
		end = startCol + colCount
	}
	out := make([]string, end-startCol)
	copy(out, row[startCol:end])
	return out
}

// Includes reports whether the row at rowIndex is inside the row window.
// It is Decide(...).Include for callers that only need to know whether to keep
// a row's cells.
func (w Window) Includes(rowIndex int) bool {
	return Decide(rowIndex, w.StartRow, w.RowCount).Include
}
