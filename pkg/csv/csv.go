// Package csv extracts a window of rows and columns from CSV data.
//
// The input is tokenized field by field into a small fixed buffer. Rows outside
// the requested window are decoded but never materialized, and scanning stops
// as soon as the row window is satisfied, so asking for the first rows of a
// large document costs only as much as those rows.
//
// Supported format:
//   - Fields are separated by commas
//   - Records are separated by LF, CRLF or CR
//   - Fields may be quoted with double quotes
//   - Quoted fields may contain commas, line breaks, and escaped quotes ("")
//   - An empty line is a record with one empty field
//   - A final record without a line break is still returned
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple goroutines.
// Each call keeps its own state; the input slice is only read.
//
//	// Safe: Concurrent parsing
//	go func() { csv.Parse(input1) }()
//	go func() { csv.Parse(input2, csv.WithRowCount(10)) }()
//
// # Example usage with Parse:
//
//	data := []byte("name,age,city\nAlice,30,Paris\nBob,25,Rome\n")
//	rows, err := csv.Parse(data, csv.WithStartRow(1), csv.WithColCount(2))
//	if err != nil {
//	    // handle error
//	}
//	// rows is [][]string{{"Alice", "30"}, {"Bob", "25"}}
//
// # Windows
//
// A window is given with options (WithStartRow, WithRowCount, WithStartCol,
// WithColCount) or as a Window value, which can also be decoded from JSON with
// WindowFromJSON. Unset starts default to 0 and unset counts are unbounded.
// Column bounds are clamped to each row's width: a row shorter than the column
// window is returned truncated, or empty when it ends before the start column.
package csv

import (
	"errors"
	"fmt"
	"io"

	"github.com/shapestone/shape-csv-window/internal/extractor"
	"github.com/shapestone/shape-csv-window/internal/mapfile"
)

// Parse extracts the rows and columns selected by opts from data.
//
// Returns the selected rows in source order. Empty input, or a window that
// starts past the last row, yields an empty table and no error. If any field
// read before the scan ends is not valid UTF-8, Parse returns a *DecodeError
// and a nil table.
//
// Example:
//
//	rows, err := csv.Parse([]byte("a,b\n1,2\n3,4\n5,6"), csv.WithStartRow(1), csv.WithRowCount(2))
//	// rows is [][]string{{"1", "2"}, {"3", "4"}}
func Parse(data []byte, opts ...Option) ([][]string, error) {
	res, _, err := extract(data, opts)
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

// ParseWindow extracts the rows and columns selected by w from data.
// It is Parse with a single WithWindow option.
func ParseWindow(data []byte, w Window) ([][]string, error) {
	return Parse(data, WithWindow(w))
}

// ParseReader reads r to the end and extracts the window selected by opts.
//
// The whole input is read before extraction starts; the early exit saves
// tokenizing and decoding, not reading.
//
// Example:
//
//	file, err := os.Open("data.csv")
//	if err != nil {
//	    // handle error
//	}
//	defer file.Close()
//
//	rows, err := csv.ParseReader(file, csv.WithRowCount(100))
func ParseReader(r io.Reader, opts ...Option) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("csv: read input: %w", err)
	}
	return Parse(data, opts...)
}

// ParseFile extracts the window selected by opts from the named file.
//
// On Unix the file is memory-mapped, so only the pages up to the end of the
// row window are read from disk. The returned rows do not reference the file.
//
// Example:
//
//	rows, err := csv.ParseFile("large.csv", csv.WithRowCount(10))
func ParseFile(name string, opts ...Option) (rows [][]string, err error) {
	m, err := mapfile.Open(name)
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	defer func() {
		if cerr := m.Close(); cerr != nil {
			rows, err = nil, errors.Join(err, fmt.Errorf("csv: %w", cerr))
		}
	}()

	return Parse(m.Bytes(), opts...)
}

// Format returns the format identifier for this parser.
// Returns "CSV" to identify this as the CSV data format parser.
func Format() string {
	return "CSV"
}

// extract applies opts, validates the window and runs the extractor.
func extract(data []byte, opts []Option) (*extractor.Result, config, error) {
	cfg := newConfig(opts)
	if err := cfg.window.Validate(); err != nil {
		return nil, cfg, err
	}

	res, err := extractor.Extract(data, cfg.window.bounds(), extractor.Options{
		BufferSize: cfg.bufferSize,
		Logger:     cfg.logger,
	})
	if err != nil {
		return nil, cfg, err
	}
	return res, cfg, nil
}
